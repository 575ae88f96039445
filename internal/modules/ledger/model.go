package ledger

import (
	"time"

	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
)

// AnonymousClient is the name recorded when a sale has no client attached.
const AnonymousClient = "Client anonyme"

// InvoiceItem is the snapshot of one sold line: product identity, unit
// price and line total as they were at the moment of sale.
type InvoiceItem struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
	Qty   int64  `json:"qty" bson:"qty"`
	Total int64  `json:"total" bson:"total"`
}

// Invoice is an immutable record of a completed sale. Numbers are assigned
// sequentially from the settings counter, starting at 1.
type Invoice struct {
	ID         string        `json:"id" bson:"_id"`
	Number     int64         `json:"number" bson:"number"`
	Date       time.Time     `json:"date" bson:"date"`
	ClientID   string        `json:"clientId,omitempty" bson:"clientId,omitempty"`
	ClientName string        `json:"clientName" bson:"clientName"`
	Items      []InvoiceItem `json:"items" bson:"items"`
	Total      int64         `json:"total" bson:"total"`
	Notes      string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// SaleItem references a product and quantity; the service snapshots name
// and price from the catalog.
type SaleItem struct {
	ProductID string `json:"productId"`
	Qty       int64  `json:"qty"`
}

// SaleRequest is the payload for a one-off sale that bypasses the cart.
type SaleRequest struct {
	Items      []SaleItem `json:"items"`
	ClientID   string     `json:"clientId,omitempty"`
	ClientName string     `json:"clientName,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// CheckoutRequest is the payload for completing the standing cart.
type CheckoutRequest struct {
	ClientName string `json:"clientName,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ClientCounters carries the post-sale loyalty counters for the purchasing
// client.
type ClientCounters struct {
	ID            string
	Purchases     int64
	TotalSpent    int64
	LoyaltyStamps int64
}

// SaleCommit is the fully-resolved write set of one completed sale. It is
// applied as a single all-or-nothing batch; a failed commit leaves no
// partial state.
type SaleCommit struct {
	Invoice           *Invoice
	NextInvoiceNumber int64
	StockLevels       map[string]int64 // product id -> new stock, already clamped at 0
	Client            *ClientCounters  // nil for anonymous sales
}

// Summary is the dashboard projection, recomputed from the live collections.
type Summary struct {
	TodayInvoices []*Invoice         `json:"todayInvoices"`
	TodayTotal    int64              `json:"todayTotal"`
	LowStock      []*catalog.Product `json:"lowStockProducts"`
	TopClients    []*client.Client   `json:"topClients"`
	CartTotal     int64              `json:"cartTotal"`
	CartCount     int64              `json:"cartCount"`
}
