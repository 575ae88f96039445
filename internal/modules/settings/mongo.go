package settings

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heavensbakes/pos-backend/internal/store"
)

type mongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a repository over the settings collection; the
// module only ever touches the "general" document.
func NewMongoRepository(s *store.Store) Repository {
	return &mongoRepo{coll: s.Collection(store.CollSettings)}
}

func (r *mongoRepo) Get(ctx context.Context) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s Settings
	err := r.coll.FindOne(ctx, bson.M{"_id": DocID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepo) Put(ctx context.Context, s *Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": DocID}, s, opts)
	return err
}

func (r *mongoRepo) Update(ctx context.Context, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateByID(ctx, DocID, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
