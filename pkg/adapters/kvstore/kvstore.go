// Package kvstore is a lightweight local key-value store on SQLite. It
// holds the small whole-document records that do not warrant per-record
// note storage: the ordered folder collection and app settings.
package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/inkpad-app/inkpad/pkg/core"
)

const foldersKey = "folders"

// Store is a SQLite-backed key-value store.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the store at path and runs migrations.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the value stored under key, or core.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// LoadFolders returns the persisted folder collection in stored order. An
// absent document means no folders yet.
func (s *Store) LoadFolders(ctx context.Context) ([]core.Folder, error) {
	data, err := s.Get(ctx, foldersKey)
	if errors.Is(err, core.ErrNotFound) {
		return []core.Folder{}, nil
	}
	if err != nil {
		return nil, err
	}

	var folders []core.Folder
	if err := json.Unmarshal(data, &folders); err != nil {
		return nil, fmt.Errorf("failed to parse folder collection: %w", err)
	}
	return folders, nil
}

// SaveFolders rewrites the whole folder collection document.
func (s *Store) SaveFolders(ctx context.Context, folders []core.Folder) error {
	if folders == nil {
		folders = []core.Folder{}
	}
	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("failed to serialize folder collection: %w", err)
	}
	return s.Put(ctx, foldersKey, data)
}

var _ core.FolderStore = (*Store)(nil)
