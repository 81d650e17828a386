// Package treefile serializes tree documents to and from JSON.
//
// A tree document captures a full editor state: the node table with
// derived positions and colors, the layout spacing, and the selection.
// The same format backs file import/export, the persistence stores, and
// API responses.
package treefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a tree to pretty-printed JSON bytes.
// Nodes are sorted by ID for deterministic output.
func Marshal(t *tree.Tree, engine layout.Engine) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(t, engine, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a tree document to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(t *tree.Tree, engine layout.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(t, engine, f)
}

// Write writes a tree document as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(t *tree.Tree, engine layout.Engine, w io.Writer) error {
	return writeTo(t, engine, w)
}

// ReadFile reads a JSON file and returns the decoded document.
// Returns validation errors for malformed documents.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON document from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Document, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(t *tree.Tree, engine layout.Engine, w io.Writer) error {
	out := FromTree(t, engine)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}
