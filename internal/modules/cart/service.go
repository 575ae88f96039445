package cart

import (
	"context"
	"errors"

	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
)

// View is the priced rendering of the cart against the current catalog.
type View struct {
	Lines    []PricedLine `json:"lines"`
	Total    int64        `json:"total"`
	Count    int64        `json:"count"`
	ClientID string       `json:"clientId,omitempty"`
}

// PricedLine is a cart line joined with its product.
type PricedLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"qty"`
	Total     int64  `json:"total"`
}

// Service defines cart business logic.
type Service interface {
	Add(ctx context.Context, productID string) (*View, error)
	SetQty(ctx context.Context, productID string, qty int64) (*View, error)
	Clear()
	SelectClient(id string)
	View(ctx context.Context) (*View, error)
}

type service struct {
	state    *State
	products catalog.Repository
}

// NewService creates a cart service pricing lines from the catalog.
func NewService(state *State, products catalog.Repository) Service {
	return &service{state: state, products: products}
}

func (s *service) Add(ctx context.Context, productID string) (*View, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	s.state.Add(productID)
	return s.View(ctx)
}

func (s *service) SetQty(ctx context.Context, productID string, qty int64) (*View, error) {
	s.state.SetQty(productID, qty)
	return s.View(ctx)
}

func (s *service) Clear() { s.state.Clear() }

func (s *service) SelectClient(id string) { s.state.SelectClient(id) }

func (s *service) View(ctx context.Context) (*View, error) {
	view := &View{Lines: make([]PricedLine, 0), ClientID: s.state.SelectedClient()}
	for _, l := range s.state.Lines() {
		priced := PricedLine{ProductID: l.ProductID, Name: "Unknown", Qty: l.Qty}
		p, err := s.products.GetByID(ctx, l.ProductID)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		if err == nil {
			priced.Name = p.Name
			priced.Price = p.Price
			priced.Total = p.Price * l.Qty
		}
		view.Lines = append(view.Lines, priced)
		view.Total += priced.Total
		view.Count += l.Qty
	}
	return view, nil
}
