package settings

import (
	"context"
	"errors"
	"fmt"
)

// Service defines settings business logic.
type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
}

type service struct{ repo Repository }

// NewService creates a settings service.
func NewService(repo Repository) Service { return &service{repo: repo} }

// Get returns the store settings, falling back to defaults when the
// document has not been written yet.
func (s *service) Get(ctx context.Context) (*Settings, error) {
	cfg, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		defaults := Defaults()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	fields := map[string]interface{}{}
	if req.BusinessName != nil {
		fields["businessName"] = *req.BusinessName
	}
	if req.Tagline != nil {
		fields["tagline"] = *req.Tagline
	}
	if req.OwnerName != nil {
		fields["ownerName"] = *req.OwnerName
	}
	if req.LoyaltyThreshold != nil {
		if *req.LoyaltyThreshold < 1 {
			return nil, fmt.Errorf("loyaltyThreshold must be at least 1")
		}
		fields["loyaltyThreshold"] = *req.LoyaltyThreshold
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, fmt.Errorf("lowStockThreshold cannot be negative")
		}
		fields["lowStockThreshold"] = *req.LowStockThreshold
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := s.repo.Update(ctx, fields); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx)
}
