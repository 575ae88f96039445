package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/heavensbakes/pos-backend/internal/config"
	"github.com/heavensbakes/pos-backend/internal/invoicedoc"
	"github.com/heavensbakes/pos-backend/internal/modules/auth"
	"github.com/heavensbakes/pos-backend/internal/modules/backup"
	"github.com/heavensbakes/pos-backend/internal/modules/cart"
	"github.com/heavensbakes/pos-backend/internal/modules/catalog"
	"github.com/heavensbakes/pos-backend/internal/modules/client"
	"github.com/heavensbakes/pos-backend/internal/modules/health"
	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
	"github.com/heavensbakes/pos-backend/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close(ctx)
	logger.Info("connected to document store", zap.String("db", cfg.MongoDB))

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Auth ────────────────────────────────────────────────
	authService := auth.NewService(cfg.OwnerPasswordHash, cfg.JWTSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Settings ────────────────────────────────────────────
	settingsRepo := settings.NewMongoRepository(db)
	settingsService := settings.NewService(settingsRepo)
	settings.NewHandler(settingsService, authService.Guard).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewMongoRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, settingsService, authService.Guard).RegisterRoutes(router)

	// ── Clients ─────────────────────────────────────────────
	clientRepo := client.NewMongoRepository(db)
	clientService := client.NewService(clientRepo)
	client.NewHandler(clientService).RegisterRoutes(router)

	// ── Cart ────────────────────────────────────────────────
	cartState := cart.NewState()
	cartService := cart.NewService(cartState, catalogRepo)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Sale ledger ─────────────────────────────────────────
	ledgerRepo := ledger.NewMongoRepository(db)
	ledgerService := ledger.NewService(ledgerRepo, catalogService, clientService, settingsService, cartState, logger)
	ledger.NewHandler(ledgerService).RegisterRoutes(router)

	// ── Invoice documents ───────────────────────────────────
	invoicedoc.NewHandler(ledgerService, settingsService).RegisterRoutes(router)

	// ── Backup & bootstrap ──────────────────────────────────
	backupRepo := backup.NewMongoRepository(db)
	backupService := backup.NewService(backupRepo, catalogRepo, clientRepo, ledgerRepo, settingsRepo, cfg.LegacyDataFile, logger)
	backup.NewHandler(backupService, authService.Guard).RegisterRoutes(router)

	if err := backupService.Bootstrap(ctx); err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}

	// ── Collection mirrors ──────────────────────────────────
	mirrors := map[string]*store.Mirror{
		store.CollProducts: db.NewMirror(store.CollProducts, logger),
		store.CollClients:  db.NewMirror(store.CollClients, logger),
		store.CollInvoices: db.NewMirror(store.CollInvoices, logger),
	}
	for _, m := range mirrors {
		go m.Run(ctx)
	}
	health.NewHandler(mirrors).RegisterRoutes(router)

	// ── Start server ────────────────────────────────────────
	logger.Info("POS API listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
