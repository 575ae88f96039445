package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no invoice matches the given id.
var ErrNotFound = errors.New("invoice not found")

// ErrEmptySale marks a completion attempt with no line items; nothing is
// written in that case.
var ErrEmptySale = errors.New("sale has no items")

// ErrSyncFailed wraps a failed batch commit. The sale is not completed and
// the cart is left intact; recovery is a user-initiated retry.
var ErrSyncFailed = errors.New("sale could not be synchronized")

// Repository defines the interface for invoice storage and the atomic sale
// commit.
type Repository interface {
	CommitSale(ctx context.Context, commit *SaleCommit) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	ListByDay(ctx context.Context, day time.Time) ([]*Invoice, error)
}
