package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// memStore backs every repository interface the backup service reads from,
// plus the bulk ReplaceAll it writes through.
type memStore struct {
	settings *settings.Settings
	products []*catalog.Product
	clients  []*client.Client
	invoices []*ledger.Invoice
	replaces int
}

func (m *memStore) ReplaceAll(_ context.Context, snap *Snapshot) error {
	m.replaces++
	cfg := snap.Settings
	m.settings = &cfg
	m.products = snap.Products
	m.clients = snap.Clients
	m.invoices = snap.Invoices
	return nil
}

func (m *memStore) SettingsExist(_ context.Context) (bool, error) {
	return m.settings != nil, nil
}

// settings.Repository
func (m *memStore) Get(_ context.Context) (*settings.Settings, error) {
	if m.settings == nil {
		return nil, settings.ErrNotFound
	}
	cp := *m.settings
	return &cp, nil
}
func (m *memStore) Put(_ context.Context, s *settings.Settings) error {
	cp := *s
	m.settings = &cp
	return nil
}
func (m *memStore) Update(_ context.Context, _ map[string]interface{}) error { return nil }

type productRepo struct{ s *memStore }

func (r productRepo) Create(_ context.Context, p *catalog.Product) error {
	r.s.products = append(r.s.products, p)
	return nil
}
func (r productRepo) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrNotFound
}
func (r productRepo) List(_ context.Context) ([]*catalog.Product, error) { return r.s.products, nil }
func (r productRepo) Update(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}
func (r productRepo) Delete(_ context.Context, _ string) error { return nil }
func (r productRepo) ReplaceAll(_ context.Context, products []*catalog.Product) error {
	r.s.products = products
	return nil
}

type clientRepo struct{ s *memStore }

func (r clientRepo) Create(_ context.Context, c *client.Client) error {
	r.s.clients = append(r.s.clients, c)
	return nil
}
func (r clientRepo) GetByID(_ context.Context, id string) (*client.Client, error) {
	for _, c := range r.s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, client.ErrNotFound
}
func (r clientRepo) List(_ context.Context) ([]*client.Client, error) { return r.s.clients, nil }
func (r clientRepo) Update(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}
func (r clientRepo) Delete(_ context.Context, _ string) error { return nil }

type invoiceRepo struct{ s *memStore }

func (r invoiceRepo) CommitSale(_ context.Context, _ *ledger.SaleCommit) error { return nil }
func (r invoiceRepo) GetInvoice(_ context.Context, id string) (*ledger.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, ledger.ErrNotFound
}
func (r invoiceRepo) ListInvoices(_ context.Context) ([]*ledger.Invoice, error) {
	return r.s.invoices, nil
}
func (r invoiceRepo) ListByDay(_ context.Context, _ time.Time) ([]*ledger.Invoice, error) {
	return r.s.invoices, nil
}

func newTestService(t *testing.T, store *memStore, legacyFile string) Service {
	t.Helper()
	return NewService(store, productRepo{store}, clientRepo{store}, invoiceRepo{store}, store, legacyFile, zap.NewNop())
}

func seededStore() *memStore {
	cfg := settings.Defaults()
	cfg.NextInvoiceNumber = 9
	return &memStore{
		settings: &cfg,
		products: []*catalog.Product{
			{ID: "p-1", Name: "Crêpes natures", Price: 1500, Stock: 48, Active: true},
		},
		clients: []*client.Client{
			{ID: "c-1", Name: "Aïcha", Purchases: 4, TotalSpent: 6500, LoyaltyStamps: 4},
		},
		invoices: []*ledger.Invoice{
			{ID: "i-1", Number: 8, Date: time.Now().UTC(), ClientName: "Aïcha", Total: 3000},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := seededStore()
	svc := newTestService(t, src, "")
	ctx := context.Background()

	snap, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	dst := seededStore()
	dst.products = nil
	dst.clients = nil
	dst.invoices = nil
	dstSvc := newTestService(t, dst, "")

	if _, err := dstSvc.Import(ctx, strings.NewReader(string(raw))); err != nil {
		t.Fatalf("import: %v", err)
	}
	back, err := dstSvc.Export(ctx)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}

	if back.Settings != snap.Settings {
		t.Fatalf("settings changed across round trip: %+v vs %+v", back.Settings, snap.Settings)
	}
	if len(back.Products) != 1 || back.Products[0].Name != "Crêpes natures" || back.Products[0].Stock != 48 {
		t.Fatalf("products changed across round trip: %+v", back.Products)
	}
	if len(back.Clients) != 1 || back.Clients[0].TotalSpent != 6500 {
		t.Fatalf("clients changed across round trip: %+v", back.Clients)
	}
	if len(back.Invoices) != 1 || back.Invoices[0].Number != 8 {
		t.Fatalf("invoices changed across round trip: %+v", back.Invoices)
	}
}

func TestImportRejectsMalformedFile(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, "")

	if _, err := svc.Import(context.Background(), strings.NewReader("{not json")); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	if store.replaces != 0 {
		t.Fatalf("malformed import must not touch the store")
	}
}

func TestImportRejectsInvalidCounter(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, "")

	raw := `{"settings":{"nextInvoiceNumber":0},"products":[],"clients":[],"invoices":[]}`
	if _, err := svc.Import(context.Background(), strings.NewReader(raw)); err == nil {
		t.Fatalf("expected error for nextInvoiceNumber below 1")
	}
	if store.replaces != 0 {
		t.Fatalf("invalid import must not touch the store")
	}
}

func TestImportAssignsMissingIDs(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, "")

	raw := `{"settings":{"nextInvoiceNumber":3},"products":[{"name":"Jus Baobab","price":500,"stock":10}],"clients":[{"name":"Marie"}],"invoices":[]}`
	snap, err := svc.Import(context.Background(), strings.NewReader(raw))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if snap.Products[0].ID == "" || snap.Clients[0].ID == "" {
		t.Fatalf("imported documents must receive ids")
	}
}

func TestBootstrapSkipsInitializedStore(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, "")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if store.replaces != 0 {
		t.Fatalf("bootstrap must leave an initialized store untouched")
	}
	if store.settings.NextInvoiceNumber != 9 {
		t.Fatalf("counter changed: %d", store.settings.NextInvoiceNumber)
	}
}

func TestBootstrapSeedsDefaults(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store, "")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if store.settings == nil || store.settings.BusinessName != "Heaven's Bakes & Sips" {
		t.Fatalf("expected default settings, got %+v", store.settings)
	}
	if len(store.products) == 0 {
		t.Fatalf("expected the deployment menu to be seeded")
	}
	for _, p := range store.products {
		if p.ID == "" {
			t.Fatalf("seeded product %q has no id", p.Name)
		}
	}
}

func TestBootstrapMigratesLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "legacy.json")
	raw := `{
		"settings":{"businessName":"Heaven's Bakes & Sips","ownerName":"Sarah","loyaltyThreshold":10,"lowStockThreshold":5,"currency":"FCFA","nextInvoiceNumber":17},
		"products":[{"name":"Crêpes panées","price":2000,"stock":12}],
		"clients":[{"name":"Aïcha","purchases":3,"totalSpent":4500,"loyaltyStamps":3}],
		"invoices":[{"number":16,"clientName":"Aïcha","total":1500,"items":[]}]
	}`
	if err := os.WriteFile(legacy, []byte(raw), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	store := &memStore{}
	svc := newTestService(t, store, legacy)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if store.settings.NextInvoiceNumber != 17 {
		t.Fatalf("legacy counter not carried over: %d", store.settings.NextInvoiceNumber)
	}
	if len(store.products) != 1 || store.products[0].Name != "Crêpes panées" {
		t.Fatalf("legacy products not migrated: %+v", store.products)
	}
	if len(store.clients) != 1 || store.clients[0].LoyaltyStamps != 3 {
		t.Fatalf("legacy clients not migrated: %+v", store.clients)
	}
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Fatalf("legacy file should have been archived")
	}
	if _, err := os.Stat(legacy + ".migrated"); err != nil {
		t.Fatalf("archived legacy file missing: %v", err)
	}
}
