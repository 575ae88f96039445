package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mirror keeps an in-memory copy of one collection, refreshed by a change
// stream. The copy serves read projections only and is never authoritative
// for writes. A subscription failure is recorded and surfaced to the UI as
// a dismissable sync error; there is no automatic retry.
type Mirror struct {
	coll   *mongo.Collection
	logger *zap.Logger

	mu      sync.RWMutex
	docs    map[string]bson.M
	syncErr error
}

// NewMirror creates a mirror for the named collection.
func (s *Store) NewMirror(collection string, logger *zap.Logger) *Mirror {
	return &Mirror{
		coll:   s.db.Collection(collection),
		logger: logger,
		docs:   make(map[string]bson.M),
	}
}

// Run loads the collection and then follows its change stream until the
// context is cancelled. Intended to be started as a goroutine per collection.
func (m *Mirror) Run(ctx context.Context) {
	if err := m.load(ctx); err != nil {
		m.fail(err)
		return
	}

	streamOpts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := m.coll.Watch(ctx, mongo.Pipeline{}, streamOpts)
	if err != nil {
		m.fail(err)
		return
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			OperationType string `bson:"operationType"`
			DocumentKey   struct {
				ID string `bson:"_id"`
			} `bson:"documentKey"`
			FullDocument bson.M `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			m.fail(err)
			return
		}
		m.apply(event.OperationType, event.DocumentKey.ID, event.FullDocument)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		m.fail(err)
	}
}

func (m *Mirror) load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	docs := make(map[string]bson.M)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if id, ok := doc["_id"].(string); ok {
			docs[id] = doc
		}
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.docs = docs
	m.mu.Unlock()
	return nil
}

func (m *Mirror) apply(op, id string, doc bson.M) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch op {
	case "insert", "update", "replace":
		if doc != nil {
			m.docs[id] = doc
		}
	case "delete":
		delete(m.docs, id)
	case "drop", "invalidate":
		m.docs = make(map[string]bson.M)
	}
}

func (m *Mirror) fail(err error) {
	m.logger.Error("collection sync lost", zap.String("collection", m.coll.Name()), zap.Error(err))
	m.mu.Lock()
	m.syncErr = err
	m.mu.Unlock()
}

// Len reports the number of mirrored documents.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Err returns the subscription error, if the mirror has fallen out of sync.
func (m *Mirror) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.syncErr
}
