// Package csvstore persists records as a flat comma-delimited text file with
// a fixed header line.
package csvstore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// maxLineSize bounds a single record line.
const maxLineSize = 1 << 20

// Store reads and writes record files.
type Store struct {
	log zerolog.Logger
}

var _ types.Store = (*Store)(nil)

// New creates a Store that reports activity to log.
func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// EnsureDirectory creates dir and any missing parents.
func (s *Store) EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.NewIOError("mkdir", dir, err)
	}
	return nil
}

// Load reads the record file at path. The first line is a header and is
// discarded without inspection. A missing file is the first-run case and
// yields no records.
func (s *Store) Load(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Str("path", path).Msg("record file absent, starting empty")
		return []types.Record{}, nil
	}
	if err != nil {
		return nil, types.NewIOError("read", path, err)
	}
	defer f.Close()

	records := []types.Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		rec, err := types.ParseLine(scanner.Text())
		if err != nil {
			var perr *types.ParseError
			if errors.As(err, &perr) {
				perr.Path = path
				perr.Line = lineNo
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewIOError("read", path, err)
	}

	s.log.Debug().Str("path", path).Int("records", len(records)).Msg("loaded records")
	return records, nil
}

// Save writes the header and one line per record to path using the
// temp-file, fsync, rename pattern.
func (s *Store) Save(records []types.Record, path string) error {
	if err := writeLines(path, records); err != nil {
		return types.NewIOError("write", path, err)
	}
	s.log.Debug().Str("path", path).Int("records", len(records)).Msg("saved records")
	return nil
}

func writeLines(path string, records []types.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".products-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(types.Header + "\n"); err != nil {
		return fail(fmt.Errorf("writing header: %w", err))
	}
	for _, rec := range records {
		if _, err := w.WriteString(rec.Line() + "\n"); err != nil {
			return fail(fmt.Errorf("writing record %d: %w", rec.ID, err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
