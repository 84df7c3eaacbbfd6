package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path string
}

// Memory is the path of a private in-memory database.
const Memory = ":memory:"

func DefaultConfig() Config {
	if p := os.Getenv("COMICSDB_DB_PATH"); p != "" {
		return Config{Path: p}
	}

	// local default: ~/.comicsdb/comics.db
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{
		Path: filepath.Join(home, ".comicsdb", "comics.db"),
	}
}

func isMemory(path string) bool {
	return path == Memory || strings.HasPrefix(path, "file::memory:")
}

func EnsureDataDir(cfg Config) error {
	if isMemory(cfg.Path) {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

// Open opens the catalog database. The import pipeline is a single writer, so
// the pool is capped at one connection; this also keeps ":memory:" databases
// from splitting across connections.
func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}
	if !isMemory(cfg.Path) {
		if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma journal_mode: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}
