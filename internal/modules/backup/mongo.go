package backup

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heavensbakes/pos-backend/internal/modules/settings"
	"github.com/heavensbakes/pos-backend/internal/store"
)

type mongoRepo struct {
	store *store.Store
}

// NewMongoRepository returns a backup repository writing across all four
// collections.
func NewMongoRepository(s *store.Store) Repository {
	return &mongoRepo{store: s}
}

// ReplaceAll wipes the three data collections and rewrites every document
// plus the settings singleton, inside one transaction.
func (r *mongoRepo) ReplaceAll(ctx context.Context, snap *Snapshot) error {
	batch := r.store.NewBatch().
		DeleteAll(store.CollProducts).
		DeleteAll(store.CollClients).
		DeleteAll(store.CollInvoices).
		Replace(store.CollSettings, settings.DocID, snap.Settings)

	for _, p := range snap.Products {
		batch.Insert(store.CollProducts, p)
	}
	for _, c := range snap.Clients {
		batch.Insert(store.CollClients, c)
	}
	for _, inv := range snap.Invoices {
		batch.Insert(store.CollInvoices, inv)
	}
	return batch.Commit(ctx)
}

func (r *mongoRepo) SettingsExist(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := r.store.Collection(store.CollSettings).
		FindOne(ctx, bson.M{"_id": settings.DocID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
