package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed key-value store.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the database at dataSourceName.
func NewStore(dataSourceName string) (*Store, error) {
	if dataSourceName == "" {
		dataSourceName = "serenify.db"
	}
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	kvTable := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(kvTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	log := logrus.WithField("key", key)
	log.Debug("Retrieving value by key")

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("Key not found")
			return nil, core.ErrKeyNotFound
		}
		log.WithError(err).Error("Failed to retrieve value")
		return nil, err
	}

	log.WithField("data_length", len(value)).Debug("Value retrieved successfully")
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	log := logrus.WithFields(logrus.Fields{
		"key":         key,
		"data_length": len(value),
	})
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UnixMilli())
	if err != nil {
		log.WithError(err).Error("Failed to store value")
		return err
	}

	log.Debug("Value stored successfully")
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
