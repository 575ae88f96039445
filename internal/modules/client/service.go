package client

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Service defines client roster business logic.
type Service interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error)
	DeleteClient(ctx context.Context, id string) error
	TopClients(ctx context.Context) ([]*Client, error)
}

type service struct{ repo Repository }

// NewService creates a client service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	c := &Client{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetClient(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListClients(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name is required")
		}
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteClient(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// TopClients returns the five most frequent buyers.
func (s *service) TopClients(ctx context.Context) ([]*Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	buyers := make([]*Client, 0, len(clients))
	for _, c := range clients {
		if c.Purchases > 0 {
			buyers = append(buyers, c)
		}
	}
	sort.Slice(buyers, func(i, j int) bool { return buyers[i].Purchases > buyers[j].Purchases })
	if len(buyers) > 5 {
		buyers = buyers[:5]
	}
	return buyers, nil
}
