// Package database provides SQLite persistence for login sessions, so the
// "offer completed" flag survives a process restart.
package database

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db      *sql.DB
	hashKey [32]byte
}

// NewSQLiteStore opens (or creates) the database at dbPath. secret keys the
// hash applied to session IDs before they touch disk.
func NewSQLiteStore(dbPath string, secret string) *SQLiteStore {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v\n", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Fatalf("failed to init database schema: couldn't enable foreign keys: %v\n", err)
	}

	if err := initSchema(db); err != nil {
		log.Fatalf("failed to init database: %v\n", err)
	}

	return &SQLiteStore{
		db:      db,
		hashKey: blake2b.Sum256([]byte(secret)),
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	if err := initTable(db, "sessions", `
		CREATE TABLE IF NOT EXISTS sessions (
			id_hash          TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			name             TEXT,
			email            TEXT,
			avatar           TEXT,
			provider         TEXT,
			offer_completed  INTEGER NOT NULL DEFAULT 0,
			created_at       INTEGER NOT NULL,
			expires_at       INTEGER NOT NULL
		);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}
