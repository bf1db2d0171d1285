// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/helena-commits/badge-capture-stream/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database; the change feed
	// polls from another goroutine, so pin the pool to one connection.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPhoto inserts a test photo and returns its seq.
func seedPhoto(t *testing.T, db *sql.DB, id, imageRef, name string) int64 {
	t.Helper()
	if imageRef == "" {
		imageRef = "captures/" + id + ".jpg"
	}
	result, err := db.Exec("INSERT INTO photos (id, image_ref, name) VALUES (?, ?, ?)", id, imageRef, name)
	if err != nil {
		t.Fatalf("failed to seed photo: %v", err)
	}
	seq, _ := result.LastInsertId()
	return seq
}
