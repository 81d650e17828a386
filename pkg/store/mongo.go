package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// MongoStore is a MongoDB-backed document store for server deployments.
// Documents live in a single collection keyed by name.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and prepares the document collection.
// A unique index on the name field enforces one record per name.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "arbor"
	}
	if cfg.Collection == "" {
		cfg.Collection = "trees"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create name index")
	}

	return &MongoStore{client: client, collection: coll}, nil
}

// Save creates or overwrites the document under the given name.
// An existing record keeps its id and creation time.
func (s *MongoStore) Save(ctx context.Context, name string, doc treefile.Document) (Record, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	doc.Name = name

	var prev Record
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&prev)
	switch {
	case err == mongo.ErrNoDocuments:
		prev = Record{ID: uuid.NewString(), CreatedAt: now}
	case err != nil:
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "find record %q", name)
	}

	rec := Record{
		ID:        prev.ID,
		Name:      name,
		Document:  doc,
		CreatedAt: prev.CreatedAt,
		UpdatedAt: now,
	}

	_, err = s.collection.ReplaceOne(ctx, bson.M{"name": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "save record %q", name)
	}
	return rec, nil
}

// Load retrieves the document stored under the given name.
func (s *MongoStore) Load(ctx context.Context, name string) (Record, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return Record{}, err
	}

	var rec Record
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Record{}, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", name)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "load record %q", name)
	}
	return rec, nil
}

// List returns the records of all stored documents, sorted by name.
// Node tables are projected out to keep listings small.
func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"document.nodes": 0})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list records")
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode records")
	}
	return records, nil
}

// Delete removes the document stored under the given name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	if _, err := s.collection.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete record %q", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
