package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	db     *sql.DB
	dbPath string
	dbMu   sync.Mutex
)

// SetPath overrides the database location used by GetDB. Must be called
// before the first GetDB.
func SetPath(path string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	dbPath = path
}

// GetDB returns the shared database connection, opening it if needed.
func GetDB() (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return db, nil
	}

	path := dbPath
	if path == "" {
		p, err := GetDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	opened, err := Open(path)
	if err != nil {
		return nil, err
	}
	db = opened
	return db, nil
}

// Open opens (creating if needed) the database at path and brings its
// schema up to date.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// The change feed polls from its own goroutine while the CLI writes;
	// WAL plus a busy timeout keeps readers and the writer out of each other's way.
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// Close closes the shared database connection
func Close() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// GetDBPath returns the default path to the database file
func GetDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".badgedesk", "badgedesk.db"), nil
}
