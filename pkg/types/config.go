package types

import "errors"

// Config holds store selection and file location for a session.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	File     string `json:"file" yaml:"file,omitempty"`
	LogLevel string `json:"log_level" yaml:"log_level,omitempty"`
}

// Supported backend names.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Default file names per backend.
const (
	DefaultCSVFile    = "products.csv"
	DefaultSQLiteFile = "products.db"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendCSV:    true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// FileName returns the configured data file name, falling back to the
// backend's default.
func (c Config) FileName() string {
	if c.File != "" {
		return c.File
	}
	if c.Backend == BackendSQLite {
		return DefaultSQLiteFile
	}
	return DefaultCSVFile
}
