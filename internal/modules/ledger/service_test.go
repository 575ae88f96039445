package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/heavensbakes/pos-backend/internal/modules/cart"
	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// ── in-memory fixtures ────────────────────────────────────────────────────────

type memProducts struct{ m map[string]*catalog.Product }

func (r *memProducts) Create(_ context.Context, p *catalog.Product) error {
	r.m[p.ID] = p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := r.m[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) List(_ context.Context) ([]*catalog.Product, error) {
	out := make([]*catalog.Product, 0, len(r.m))
	for _, p := range r.m {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProducts) Update(_ context.Context, id string, fields map[string]interface{}) error {
	p, ok := r.m[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if v, ok := fields["stock"]; ok {
		p.Stock = v.(int64)
	}
	return nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

func (r *memProducts) ReplaceAll(_ context.Context, products []*catalog.Product) error {
	r.m = map[string]*catalog.Product{}
	for _, p := range products {
		r.m[p.ID] = p
	}
	return nil
}

type memClients struct{ m map[string]*client.Client }

func (r *memClients) Create(_ context.Context, c *client.Client) error {
	r.m[c.ID] = c
	return nil
}

func (r *memClients) GetByID(_ context.Context, id string) (*client.Client, error) {
	c, ok := r.m[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memClients) List(_ context.Context) ([]*client.Client, error) {
	out := make([]*client.Client, 0, len(r.m))
	for _, c := range r.m {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memClients) Update(_ context.Context, id string, fields map[string]interface{}) error {
	if _, ok := r.m[id]; !ok {
		return client.ErrNotFound
	}
	return nil
}

func (r *memClients) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type memSettings struct{ s *settings.Settings }

func (r *memSettings) Get(_ context.Context) (*settings.Settings, error) {
	if r.s == nil {
		return nil, settings.ErrNotFound
	}
	cp := *r.s
	return &cp, nil
}

func (r *memSettings) Put(_ context.Context, s *settings.Settings) error {
	cp := *s
	r.s = &cp
	return nil
}

func (r *memSettings) Update(_ context.Context, fields map[string]interface{}) error {
	if r.s == nil {
		return settings.ErrNotFound
	}
	return nil
}

type fakeLedgerRepo struct {
	commits   []*SaleCommit
	invoices  []*Invoice
	commitErr error
}

func (r *fakeLedgerRepo) CommitSale(_ context.Context, commit *SaleCommit) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.commits = append(r.commits, commit)
	r.invoices = append(r.invoices, commit.Invoice)
	return nil
}

func (r *fakeLedgerRepo) GetInvoice(_ context.Context, id string) (*Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeLedgerRepo) ListInvoices(_ context.Context) ([]*Invoice, error) {
	return r.invoices, nil
}

func (r *fakeLedgerRepo) ListByDay(_ context.Context, day time.Time) ([]*Invoice, error) {
	out := make([]*Invoice, 0)
	for _, inv := range r.invoices {
		if inv.Date.Year() == day.Year() && inv.Date.YearDay() == day.YearDay() {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fixture struct {
	repo     *fakeLedgerRepo
	products *memProducts
	clients  *memClients
	settings *memSettings
	cart     *cart.State
	service  Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := settings.Defaults()
	cfg.NextInvoiceNumber = 7
	f := &fixture{
		repo:     &fakeLedgerRepo{},
		products: &memProducts{m: map[string]*catalog.Product{}},
		clients:  &memClients{m: map[string]*client.Client{}},
		settings: &memSettings{s: &cfg},
		cart:     cart.NewState(),
	}
	f.products.m["prod-a"] = &catalog.Product{ID: "prod-a", Name: "Crêpes natures", Price: 1500, Stock: 50, Active: true}
	f.products.m["prod-b"] = &catalog.Product{ID: "prod-b", Name: "Jus Baobab", Price: 1000, Stock: 1, Active: true}
	f.clients.m["cli-1"] = &client.Client{ID: "cli-1", Name: "Aïcha", Purchases: 3, TotalSpent: 4500, LoyaltyStamps: 3}

	f.service = NewService(
		f.repo,
		catalog.NewService(f.products),
		client.NewService(f.clients),
		settings.NewService(f.settings),
		f.cart,
		zap.NewNop(),
	)
	return f
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCheckoutCartAssignsNumberAndTotal(t *testing.T) {
	f := newFixture(t)
	f.cart.Add("prod-a")
	f.cart.SetQty("prod-a", 2)

	inv, err := f.service.CheckoutCart(context.Background(), CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if inv.Number != 7 {
		t.Fatalf("expected invoice number 7 got %d", inv.Number)
	}
	if inv.Total != 3000 {
		t.Fatalf("expected total 3000 got %d", inv.Total)
	}
	var sum int64
	for _, item := range inv.Items {
		sum += item.Total
	}
	if sum != inv.Total {
		t.Fatalf("total %d does not match item sum %d", inv.Total, sum)
	}

	commit := f.repo.commits[0]
	if commit.NextInvoiceNumber != 8 {
		t.Fatalf("expected next invoice number 8 got %d", commit.NextInvoiceNumber)
	}
	if commit.StockLevels["prod-a"] != 48 {
		t.Fatalf("expected stock 48 got %d", commit.StockLevels["prod-a"])
	}
	if len(f.cart.Lines()) != 0 {
		t.Fatalf("expected cart cleared after checkout")
	}
}

func TestQuickSaleLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	f.cart.Add("prod-a")

	_, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-b", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if len(f.cart.Lines()) != 1 {
		t.Fatalf("quick sale must not touch the cart")
	}
}

func TestClientCountersBumpedOnce(t *testing.T) {
	f := newFixture(t)
	f.cart.Add("prod-a")
	f.cart.SetQty("prod-a", 1)
	f.cart.Add("prod-b")
	f.cart.SetQty("prod-b", 1)
	f.cart.SelectClient("cli-1")

	inv, err := f.service.CheckoutCart(context.Background(), CheckoutRequest{ClientName: "ignored override"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if inv.ClientName != "Aïcha" {
		t.Fatalf("stored client name must win over override, got %q", inv.ClientName)
	}

	c := f.repo.commits[0].Client
	if c == nil {
		t.Fatalf("expected client counters in commit")
	}
	if c.Purchases != 4 {
		t.Fatalf("expected purchases 4 got %d", c.Purchases)
	}
	if c.TotalSpent != 4500+inv.Total {
		t.Fatalf("expected totalSpent %d got %d", 4500+inv.Total, c.TotalSpent)
	}
	if c.LoyaltyStamps != 4 {
		t.Fatalf("expected loyaltyStamps 4 got %d", c.LoyaltyStamps)
	}
}

func TestAnonymousSaleTouchesNoClient(t *testing.T) {
	f := newFixture(t)

	inv, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-a", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if inv.ClientName != AnonymousClient {
		t.Fatalf("expected %q got %q", AnonymousClient, inv.ClientName)
	}
	if f.repo.commits[0].Client != nil {
		t.Fatalf("anonymous sale must not mutate any client")
	}
}

func TestManualClientNameOverride(t *testing.T) {
	f := newFixture(t)

	inv, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items:      []SaleItem{{ProductID: "prod-a", Qty: 1}},
		ClientName: "Passant du marché",
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if inv.ClientName != "Passant du marché" {
		t.Fatalf("expected override name, got %q", inv.ClientName)
	}
}

func TestEmptySaleIsNoOp(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CheckoutCart(context.Background(), CheckoutRequest{})
	if !errors.Is(err, ErrEmptySale) {
		t.Fatalf("expected ErrEmptySale got %v", err)
	}
	if len(f.repo.commits) != 0 {
		t.Fatalf("empty sale must write nothing")
	}
	if f.settings.s.NextInvoiceNumber != 7 {
		t.Fatalf("empty sale must not touch the invoice counter")
	}
}

func TestStockClampedAtZero(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-b", Qty: 5}},
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if got := f.repo.commits[0].StockLevels["prod-b"]; got != 0 {
		t.Fatalf("expected stock clamped at 0 got %d", got)
	}
}

func TestRepeatedProductAggregatedPerCommit(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{
			{ProductID: "prod-a", Qty: 2},
			{ProductID: "prod-a", Qty: 3},
		},
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if got := f.repo.commits[0].StockLevels["prod-a"]; got != 45 {
		t.Fatalf("expected stock 45 after selling 5 got %d", got)
	}
}

func TestUnknownProductSellsAsZeroPricedLine(t *testing.T) {
	f := newFixture(t)

	inv, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "gone", Qty: 2}},
	})
	if err != nil {
		t.Fatalf("quick sale: %v", err)
	}
	if inv.Items[0].Name != "Unknown" || inv.Items[0].Total != 0 {
		t.Fatalf("expected zero-priced unknown line, got %+v", inv.Items[0])
	}
	if _, ok := f.repo.commits[0].StockLevels["gone"]; ok {
		t.Fatalf("unknown product must not get a stock update")
	}
}

func TestInvalidQuantityRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-a", Qty: 0}},
	})
	if err == nil {
		t.Fatalf("expected error for quantity 0")
	}
	if len(f.repo.commits) != 0 {
		t.Fatalf("invalid sale must write nothing")
	}
}

func TestFailedCommitKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.cart.Add("prod-a")
	f.cart.SelectClient("cli-1")
	f.repo.commitErr = errors.New("network down")

	_, err := f.service.CheckoutCart(context.Background(), CheckoutRequest{})
	if !errors.Is(err, ErrSyncFailed) {
		t.Fatalf("expected ErrSyncFailed got %v", err)
	}
	if len(f.cart.Lines()) != 1 {
		t.Fatalf("failed commit must leave the cart intact for retry")
	}
	if f.cart.SelectedClient() != "cli-1" {
		t.Fatalf("failed commit must keep the client selection")
	}
}

func TestSequentialNumbersAcrossSales(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-a", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("first sale: %v", err)
	}
	// The fixture settings repo is static; emulate the committed counter.
	f.settings.s.NextInvoiceNumber = f.repo.commits[0].NextInvoiceNumber

	second, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-a", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("second sale: %v", err)
	}
	if second.Number != first.Number+1 {
		t.Fatalf("expected sequential numbers, got %d then %d", first.Number, second.Number)
	}
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	f.cart.Add("prod-a")
	f.cart.SetQty("prod-a", 3)

	if _, err := f.service.QuickSale(context.Background(), SaleRequest{
		Items: []SaleItem{{ProductID: "prod-a", Qty: 2}},
	}); err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	summary, err := f.service.DashboardSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.TodayInvoices) != 1 || summary.TodayTotal != 3000 {
		t.Fatalf("expected one sale of 3000 today, got %d invoices totalling %d",
			len(summary.TodayInvoices), summary.TodayTotal)
	}
	if summary.CartCount != 3 || summary.CartTotal != 4500 {
		t.Fatalf("expected cart 3 items at 4500, got %d at %d", summary.CartCount, summary.CartTotal)
	}
	// prod-b sits at stock 1, below the default threshold of 5.
	found := false
	for _, p := range summary.LowStock {
		if p.ID == "prod-b" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected prod-b in low stock list")
	}
}
