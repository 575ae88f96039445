package ledger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heavensbakes/pos-backend/internal/modules/settings"
	"github.com/heavensbakes/pos-backend/internal/store"
)

type mongoRepo struct {
	coll  *mongo.Collection
	store *store.Store
}

// NewMongoRepository returns an invoice repository backed by the invoices
// collection; sale commits fan out to products, clients and settings.
func NewMongoRepository(s *store.Store) Repository {
	return &mongoRepo{coll: s.Collection(store.CollInvoices), store: s}
}

// CommitSale applies the resolved write set in one transaction: invoice
// insert, counter bump, stock levels, client counters.
func (r *mongoRepo) CommitSale(ctx context.Context, commit *SaleCommit) error {
	batch := r.store.NewBatch().
		Insert(store.CollInvoices, commit.Invoice).
		Update(store.CollSettings, settings.DocID, bson.M{"nextInvoiceNumber": commit.NextInvoiceNumber})

	for productID, stock := range commit.StockLevels {
		batch.Update(store.CollProducts, productID, bson.M{"stock": stock})
	}
	if c := commit.Client; c != nil {
		batch.Update(store.CollClients, c.ID, bson.M{
			"purchases":     c.Purchases,
			"totalSpent":    c.TotalSpent,
			"loyaltyStamps": c.LoyaltyStamps,
		})
	}
	return batch.Commit(ctx)
}

func (r *mongoRepo) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var inv Invoice
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *mongoRepo) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	return r.find(ctx, bson.M{})
}

// ListByDay returns the invoices dated within the calendar day of the
// given time, in the server's timezone.
func (r *mongoRepo) ListByDay(ctx context.Context, day time.Time) ([]*Invoice, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	return r.find(ctx, bson.M{"date": bson.M{"$gte": start, "$lt": end}})
}

func (r *mongoRepo) find(ctx context.Context, filter bson.M) ([]*Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	invoices := make([]*Invoice, 0)
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
