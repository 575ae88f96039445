package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// Service defines snapshot export/import and the first-run bootstrap.
type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, r io.Reader) (*Snapshot, error)
	Bootstrap(ctx context.Context) error
}

type service struct {
	repo       Repository
	products   catalog.Repository
	clients    client.Repository
	invoices   ledger.Repository
	settings   settings.Repository
	legacyFile string
	logger     *zap.Logger
}

// NewService creates a backup service. legacyFile, when non-empty, points
// at an export of the old local-storage app to migrate on first run.
func NewService(repo Repository, products catalog.Repository, clients client.Repository, invoices ledger.Repository, cfg settings.Repository, legacyFile string, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		products:   products,
		clients:    clients,
		invoices:   invoices,
		settings:   cfg,
		legacyFile: legacyFile,
		logger:     logger,
	}
}

// Export collects the full application state into one snapshot.
func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Settings: *cfg, Products: products, Clients: clients, Invoices: invoices}, nil
}

// Import parses a snapshot and overwrites the store with it. A malformed
// file is rejected before anything is written.
func (s *service) Import(ctx context.Context, r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	if err := validate(&snap); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	assignIDs(&snap)

	if err := s.repo.ReplaceAll(ctx, &snap); err != nil {
		return nil, err
	}
	s.logger.Info("backup imported",
		zap.Int("products", len(snap.Products)),
		zap.Int("clients", len(snap.Clients)),
		zap.Int("invoices", len(snap.Invoices)),
	)
	return &snap, nil
}

// Bootstrap prepares a fresh store: when the settings document is missing
// it migrates the legacy export file if one is configured, otherwise seeds
// defaults and the deployment menu. An already-initialized store is left
// untouched.
func (s *service) Bootstrap(ctx context.Context) error {
	exists, err := s.repo.SettingsExist(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	snap := &Snapshot{Settings: settings.Defaults()}
	migrated := false
	if s.legacyFile != "" {
		file, err := os.Open(s.legacyFile)
		if err == nil {
			defer file.Close()
			var legacy Snapshot
			if err := json.NewDecoder(file).Decode(&legacy); err != nil {
				return fmt.Errorf("legacy data file: %w", err)
			}
			if legacy.Settings.NextInvoiceNumber >= 1 {
				snap.Settings = legacy.Settings
			}
			snap.Products = legacy.Products
			snap.Clients = legacy.Clients
			snap.Invoices = legacy.Invoices
			migrated = true
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if len(snap.Products) == 0 {
		snap.Products = catalog.NewDeploymentProducts()
	}
	assignIDs(snap)

	if err := s.repo.ReplaceAll(ctx, snap); err != nil {
		return err
	}
	if migrated {
		// The legacy file is one-shot; keep it around but out of the way.
		if err := os.Rename(s.legacyFile, s.legacyFile+".migrated"); err != nil {
			s.logger.Warn("could not archive legacy data file", zap.Error(err))
		}
		s.logger.Info("legacy data migrated", zap.String("file", s.legacyFile))
		return nil
	}
	s.logger.Info("store initialized with defaults")
	return nil
}

func validate(snap *Snapshot) error {
	if snap.Settings.NextInvoiceNumber < 1 {
		return fmt.Errorf("settings.nextInvoiceNumber must be at least 1")
	}
	for _, p := range snap.Products {
		if p.Price < 0 || p.Stock < 0 {
			return fmt.Errorf("product %q has negative price or stock", p.Name)
		}
	}
	for _, inv := range snap.Invoices {
		if inv.Number < 1 {
			return fmt.Errorf("invoice with number %d", inv.Number)
		}
	}
	return nil
}

// assignIDs gives fresh ids to documents that lack one; legacy exports
// predate server-side ids.
func assignIDs(snap *Snapshot) {
	for _, p := range snap.Products {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
	}
	for _, c := range snap.Clients {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
	}
	for _, inv := range snap.Invoices {
		if inv.ID == "" {
			inv.ID = uuid.New().String()
		}
	}
}
