package settings

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the settings document has not been created yet.
var ErrNotFound = errors.New("settings not found")

// Repository defines the interface for the settings singleton.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Put(ctx context.Context, s *Settings) error
	Update(ctx context.Context, fields map[string]interface{}) error
}
