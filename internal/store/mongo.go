package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the application.
const (
	CollProducts = "products"
	CollClients  = "clients"
	CollInvoices = "invoices"
	CollSettings = "settings"
)

// Store wraps the MongoDB connection and hands out collection handles.
// The database is the sole source of truth; everything the application
// keeps in memory is a disposable copy of it.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, verifies the connection and returns a Store.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Collection returns a handle for the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ── batch ─────────────────────────────────────────────────────────────────────

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opReplace
	opDeleteAll
)

type batchOp struct {
	kind       opKind
	collection string
	id         string
	doc        interface{}
	fields     bson.M
}

// Batch collects writes across collections and commits them as a single
// all-or-nothing transaction. A failed commit leaves no partial state.
type Batch struct {
	store *Store
	ops   []batchOp
}

// NewBatch starts an empty batch against the store.
func (s *Store) NewBatch() *Batch {
	return &Batch{store: s}
}

// Insert queues a document creation.
func (b *Batch) Insert(collection string, doc interface{}) *Batch {
	b.ops = append(b.ops, batchOp{kind: opInsert, collection: collection, doc: doc})
	return b
}

// Update queues a partial update of the document with the given id.
func (b *Batch) Update(collection, id string, fields bson.M) *Batch {
	b.ops = append(b.ops, batchOp{kind: opUpdate, collection: collection, id: id, fields: fields})
	return b
}

// Replace queues a full upsert of the document with the given id.
func (b *Batch) Replace(collection, id string, doc interface{}) *Batch {
	b.ops = append(b.ops, batchOp{kind: opReplace, collection: collection, id: id, doc: doc})
	return b
}

// DeleteAll queues removal of every document in the collection.
func (b *Batch) DeleteAll(collection string) *Batch {
	b.ops = append(b.ops, batchOp{kind: opDeleteAll, collection: collection})
	return b
}

// Len reports the number of queued operations.
func (b *Batch) Len() int { return len(b.ops) }

// Commit runs all queued operations inside one session transaction.
func (b *Batch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}

	session, err := b.store.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, op := range b.ops {
			coll := b.store.db.Collection(op.collection)
			switch op.kind {
			case opInsert:
				if _, err := coll.InsertOne(sc, op.doc); err != nil {
					return nil, err
				}
			case opUpdate:
				if _, err := coll.UpdateByID(sc, op.id, bson.M{"$set": op.fields}); err != nil {
					return nil, err
				}
			case opReplace:
				opts := options.Replace().SetUpsert(true)
				if _, err := coll.ReplaceOne(sc, bson.M{"_id": op.id}, op.doc, opts); err != nil {
					return nil, err
				}
			case opDeleteAll:
				if _, err := coll.DeleteMany(sc, bson.M{}); err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
