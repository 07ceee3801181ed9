// Package snapshot persists a whole *coldb.Database to and from a
// binary blob via encoding/gob. Every exported field of Database,
// Table, ColumnHeader, ColumnStore, and ColumnIndex participates; the
// tagged-variant structs already used for in-memory storage are
// encoded directly, native-typed, rather than through a stringified or
// parallel wire representation.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"coldb/internal/coldb"
)

// Save gob-encodes db and writes it to w.
func Save(w io.Writer, db *coldb.Database) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Load gob-decodes a *coldb.Database from r.
func Load(r io.Reader) (*coldb.Database, error) {
	var db coldb.Database
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&db); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &db, nil
}

// SaveFile writes a snapshot of db to path, creating or truncating it.
func SaveFile(path string, db *coldb.Database) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s for write: %w", path, err)
	}
	defer f.Close()
	return Save(f, db)
}

// LoadFile reads and decodes a snapshot from path.
func LoadFile(path string) (*coldb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s for read: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Bytes gob-encodes db into a new byte slice. Convenience used by
// tests and by the REPL's in-memory round-trip checks.
func Bytes(db *coldb.Database) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(&buf, db); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a *coldb.Database previously produced by Bytes.
func FromBytes(data []byte) (*coldb.Database, error) {
	return Load(bytes.NewReader(data))
}
