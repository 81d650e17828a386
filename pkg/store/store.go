// Package store persists named tree documents.
//
// A store maps document names to tree documents. Two backends are
// provided: FileStore keeps JSON files in a local directory for CLI
// usage, and MongoStore keeps documents in a collection for the server.
//
// Documents are identified by a user-chosen name; each saved record
// additionally carries a stable generated id and timestamps.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/arbor/pkg/treefile"
)

// Record wraps a stored document with identity and timestamps.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Document  treefile.Document `json:"document" bson:"document"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Store persists named tree documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save creates or overwrites the document under the given name.
	// Returns the stored record with id and timestamps filled in.
	Save(ctx context.Context, name string, doc treefile.Document) (Record, error)

	// Load retrieves the document stored under the given name.
	// Returns a DOCUMENT_NOT_FOUND error if no such document exists.
	Load(ctx context.Context, name string) (Record, error)

	// List returns the records of all stored documents, sorted by name.
	// The records carry metadata only; Document node tables may be empty.
	List(ctx context.Context) ([]Record, error)

	// Delete removes the document stored under the given name.
	// Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
