package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/heavensbakes/pos-backend/internal/modules/cart"
	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// Service defines the sale ledger: sale completion, invoice history and the
// dashboard projections.
type Service interface {
	CheckoutCart(ctx context.Context, req CheckoutRequest) (*Invoice, error)
	QuickSale(ctx context.Context, req SaleRequest) (*Invoice, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	DashboardSummary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo     Repository
	products catalog.Service
	clients  client.Service
	settings settings.Service
	cart     *cart.State
	logger   *zap.Logger
}

// NewService creates the ledger service.
func NewService(repo Repository, products catalog.Service, clients client.Service, cfg settings.Service, cartState *cart.State, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		products: products,
		clients:  clients,
		settings: cfg,
		cart:     cartState,
		logger:   logger,
	}
}

// CheckoutCart completes the standing cart as one sale. The cart and the
// selected client are cleared only after the commit succeeds.
func (s *service) CheckoutCart(ctx context.Context, req CheckoutRequest) (*Invoice, error) {
	lines := s.cart.Lines()
	saleItems := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		saleItems = append(saleItems, SaleItem{ProductID: l.ProductID, Qty: l.Qty})
	}

	items, err := s.snapshotItems(ctx, saleItems)
	if err != nil {
		return nil, err
	}
	inv, err := s.completeSale(ctx, items, s.cart.SelectedClient(), req.ClientName, req.Notes)
	if err != nil {
		return nil, err
	}
	s.cart.Clear()
	return inv, nil
}

// QuickSale completes a one-off sale without touching the cart.
func (s *service) QuickSale(ctx context.Context, req SaleRequest) (*Invoice, error) {
	items, err := s.snapshotItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return s.completeSale(ctx, items, req.ClientID, req.ClientName, req.Notes)
}

// snapshotItems freezes name, unit price and line total for each sold line.
// A product missing from the catalog still sells, as a zero-priced unknown
// line, so a stale cart cannot block the counter.
func (s *service) snapshotItems(ctx context.Context, items []SaleItem) ([]InvoiceItem, error) {
	out := make([]InvoiceItem, 0, len(items))
	for _, item := range items {
		if item.Qty < 1 {
			return nil, fmt.Errorf("quantity must be at least 1")
		}
		snap := InvoiceItem{ID: item.ProductID, Name: "Unknown", Qty: item.Qty}
		p, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		if err == nil {
			snap.Name = p.Name
			snap.Price = p.Price
			snap.Total = p.Price * item.Qty
		}
		out = append(out, snap)
	}
	return out, nil
}

// completeSale assigns the next invoice number, records the invoice,
// decrements stock and bumps the client's loyalty counters, all in one
// atomic batch. Counters and stock are read back from the store at commit
// time; concurrent cashiers remain last-write-wins on those scalars.
func (s *service) completeSale(ctx context.Context, items []InvoiceItem, clientID, nameOverride, notes string) (*Invoice, error) {
	if len(items) == 0 {
		return nil, ErrEmptySale
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var total int64
	for _, item := range items {
		total += item.Total
	}

	clientName := nameOverride
	if clientName == "" {
		clientName = AnonymousClient
	}
	var counters *ClientCounters
	if clientID != "" {
		c, err := s.clients.GetClient(ctx, clientID)
		if err != nil && !errors.Is(err, client.ErrNotFound) {
			return nil, err
		}
		if err == nil {
			// The stored name wins over any manual override.
			clientName = c.Name
			counters = &ClientCounters{
				ID:            c.ID,
				Purchases:     c.Purchases + 1,
				TotalSpent:    c.TotalSpent + total,
				LoyaltyStamps: c.LoyaltyStamps + 1,
			}
		}
	}

	stock := make(map[string]int64)
	sold := make(map[string]int64)
	for _, item := range items {
		sold[item.ID] += item.Qty
	}
	for productID, qty := range sold {
		p, err := s.products.GetProduct(ctx, productID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		newStock := p.Stock - qty
		if newStock < 0 {
			newStock = 0
		}
		stock[productID] = newStock
	}

	invoice := &Invoice{
		ID:         uuid.New().String(),
		Number:     cfg.NextInvoiceNumber,
		Date:       time.Now().UTC(),
		ClientID:   clientID,
		ClientName: clientName,
		Items:      items,
		Total:      total,
		Notes:      notes,
	}
	commit := &SaleCommit{
		Invoice:           invoice,
		NextInvoiceNumber: invoice.Number + 1,
		StockLevels:       stock,
		Client:            counters,
	}

	if err := s.repo.CommitSale(ctx, commit); err != nil {
		s.logger.Error("sale commit failed", zap.Int64("number", invoice.Number), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	s.logger.Info("sale completed",
		zap.Int64("number", invoice.Number),
		zap.Int64("total", invoice.Total),
		zap.String("client", invoice.ClientName),
	)
	return invoice, nil
}

func (s *service) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *service) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// DashboardSummary recomputes the read-only projections: today's sales,
// restock candidates, best clients and the cart totals.
func (s *service) DashboardSummary(ctx context.Context) (*Summary, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.ListByDay(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	low, err := s.products.LowStock(ctx, cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	top, err := s.clients.TopClients(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TodayInvoices: today,
		LowStock:      low,
		TopClients:    top,
	}
	for _, inv := range today {
		summary.TodayTotal += inv.Total
	}
	for _, l := range s.cart.Lines() {
		summary.CartCount += l.Qty
		p, err := s.products.GetProduct(ctx, l.ProductID)
		if err == nil {
			summary.CartTotal += p.Price * l.Qty
		}
	}
	return summary, nil
}
