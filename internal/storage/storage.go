package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Collection names, one JSON file each under the data directory.
const (
	CollectionProducts  = "products"
	CollectionStock     = "stock"
	CollectionCarts     = "carts"
	CollectionOrders    = "orders"
	CollectionInvoices  = "invoices"
	CollectionPayments  = "payments"
	CollectionShipments = "shipments"
	CollectionAccounts  = "accounts"
	CollectionCustomers = "customers"
	CollectionStaff     = "staff"
)

// Store persists whole-collection snapshots as JSON files. Callers
// read a collection, modify it, and write it back; there is no partial
// update.
type Store struct {
	dir string
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads every record in a collection. A missing or empty file is
// an empty collection, not an error.
func Load[T any](s *Store, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return records, nil
}

// Save replaces a collection. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated collection.
func Save[T any](s *Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	path := s.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// NextID returns one past the highest id currently in the collection.
func NextID[T any](records []T, id func(T) int64) int64 {
	var max int64
	for _, r := range records {
		if v := id(r); v > max {
			max = v
		}
	}
	return max + 1
}
