package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// Database wraps the connection pool shared by every repository.
type Database struct {
	*sql.DB
}

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute

	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// New opens the pool and waits for postgres to answer. The container usually
// starts next to the database, so a few failed pings are retried.
func New(connectionString string) (*Database, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := waitForDB(db, connectAttempts, connectBackoff); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Println("Successfully connected to database")
	return &Database{db}, nil
}

func waitForDB(db *sql.DB, attempts int, backoff time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if i < attempts {
			log.Printf("Database not ready (attempt %d/%d): %v", i, attempts, err)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("failed to ping database: %w", err)
}

func (db *Database) Close() error {
	return db.DB.Close()
}
