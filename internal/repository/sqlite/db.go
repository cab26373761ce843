package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"taskapi/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single connection serializes writers; the pragma below is per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// Store bundles the repositories backed by one database handle.
type Store struct {
	DB    *sql.DB
	Users repository.UserRepository
	Tasks repository.TaskRepository
}

// NewStore opens the database at path and creates the tables it needs.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}

	store := &Store{
		DB:    db,
		Users: NewUserRepository(db),
		Tasks: NewTaskRepository(db),
	}
	// users first: tasks reference them
	if err := store.Users.Init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	if err := store.Tasks.Init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init task repository: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
