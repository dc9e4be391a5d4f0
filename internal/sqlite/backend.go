// Package sqlite implements a record store backed by a single SQLite
// database file. It holds the same data as the flat-file store and is
// selected with backend: sqlite in config.yaml.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Store reads and writes records in a SQLite database file.
type Store struct {
	log zerolog.Logger
}

var _ types.Store = (*Store)(nil)

// NewStore creates a SQLite-backed Store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// EnsureDirectory creates dir and any missing parents.
func (s *Store) EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.NewIOError("mkdir", dir, err)
	}
	return nil
}

// Load returns all records in stored order. The database is opened read-only;
// a missing file or a file without the products table yields no records.
func (s *Store) Load(path string) ([]types.Record, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Str("path", path).Msg("database absent, starting empty")
		return []types.Record{}, nil
	} else if err != nil {
		return nil, types.NewIOError("read", path, err)
	}

	db, err := openReadOnly(path)
	if err != nil {
		return nil, types.NewIOError("read", path, err)
	}
	defer db.Close()

	var tables int
	if err := db.QueryRow(countProductsTable).Scan(&tables); err != nil {
		return nil, types.NewIOError("read", path, fmt.Errorf("inspect schema: %w", err))
	}
	if tables == 0 {
		s.log.Debug().Str("path", path).Msg("products table absent, starting empty")
		return []types.Record{}, nil
	}

	rows, err := db.Query(selectProducts)
	if err != nil {
		return nil, types.NewIOError("read", path, fmt.Errorf("query products: %w", err))
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var (
			rec   types.Record
			price string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Category, &price, &rec.Quantity); err != nil {
			return nil, types.NewIOError("read", path, fmt.Errorf("scan product: %w", err))
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, &types.ParseError{Input: price, Field: "price", Path: path, Line: len(records) + 1, Err: err}
		}
		rec.Price = types.NormalizePrice(parsed)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewIOError("read", path, err)
	}

	s.log.Debug().Str("path", path).Int("records", len(records)).Msg("loaded records")
	return records, nil
}

// Save replaces every stored row with records inside one transaction.
func (s *Store) Save(records []types.Record, path string) error {
	db, err := open(path)
	if err != nil {
		return types.NewIOError("write", path, err)
	}
	defer db.Close()

	if err := replaceAll(db, records); err != nil {
		return types.NewIOError("write", path, err)
	}

	s.log.Debug().Str("path", path).Int("records", len(records)).Msg("saved records")
	return nil
}

// openReadOnly opens the database at path without creating or altering it.
func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// open opens the database at path and applies the schema.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createProducts); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func replaceAll(db *sql.DB, records []types.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteProducts); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.Prepare(insertProduct)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.Exec(i, rec.ID, rec.Name, rec.Category, rec.Price.StringFixed(types.PricePlaces), rec.Quantity); err != nil {
			return fmt.Errorf("insert product %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
