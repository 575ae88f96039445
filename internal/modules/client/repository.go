package client

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no client matches the given id.
var ErrNotFound = errors.New("client not found")

// Repository defines the interface for client storage.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
