// Package database holds driver-agnostic connection configuration for the
// persistence layer.
package database

import (
	"fmt"
	"os"
	"path/filepath"
)

// Driver identifies the backing store.
type Driver string

const (
	DriverSQLite  Driver = "sqlite"
	DriverMongoDB Driver = "mongodb"
)

// IsValid reports whether the driver is supported.
func (d Driver) IsValid() bool {
	return d == DriverSQLite || d == DriverMongoDB
}

// Config holds connection settings for all supported drivers.
type Config struct {
	Driver Driver

	// SQLite
	SQLitePath string

	// MongoDB
	MongoURI      string
	MongoDatabase string
}

// DefaultSQLitePath returns the default location of the embedded database.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulse/pulse.db"
	}
	return filepath.Join(home, ".pulse", "pulse.db")
}

// EnsureDirectory creates the parent directory of a database file.
func EnsureDirectory(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
