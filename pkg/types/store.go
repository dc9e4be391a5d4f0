package types

// Store translates between a persisted file and an ordered slice of Records.
type Store interface {
	// EnsureDirectory creates dir and its parents if absent.
	// Returns an *IOError on failure.
	EnsureDirectory(dir string) error

	// Load returns the records stored at path, in stored order.
	// A missing file yields an empty slice and no error.
	Load(path string) ([]Record, error)

	// Save overwrites path with records in slice order.
	Save(records []Record, path string) error
}
