package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// CreateDatabaseIfNotExists connects to the maintenance database of the same
// server and creates the target database on first start.
func CreateDatabaseIfNotExists(connString string) error {
	dbName, err := extractDBName(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	if !validDBName(dbName) {
		return fmt.Errorf("invalid database name %q", dbName)
	}

	rootConnStr, err := replaceDBName(connString, "postgres")
	if err != nil {
		return fmt.Errorf("failed to create root connection string: %w", err)
	}

	root, err := sql.Open("postgres", rootConnStr)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer root.Close()

	var exists bool
	err = root.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	log.Printf("Creating database: %s", dbName)
	// CREATE DATABASE takes no bind parameters; the name is validated above.
	if _, err := root.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		var pqErr *pq.Error
		// 42P04: another instance created it first.
		if errors.As(err, &pqErr) && pqErr.Code == "42P04" {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	log.Printf("Database %s created successfully", dbName)
	return nil
}

func isURLConnString(connString string) bool {
	return strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://")
}

// extractDBName reads the database name from a URL or key=value DSN.
func extractDBName(connString string) (string, error) {
	if isURLConnString(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", fmt.Errorf("failed to parse connection URL: %w", err)
		}
		return strings.TrimPrefix(u.Path, "/"), nil
	}

	for _, pair := range strings.Fields(connString) {
		if name, ok := strings.CutPrefix(pair, "dbname="); ok {
			return name, nil
		}
	}
	return "", errors.New("could not find database name in connection string")
}

func validDBName(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}
	for _, c := range name {
		if !(c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

func replaceDBName(connString, newName string) (string, error) {
	if isURLConnString(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", err
		}
		u.Path = "/" + newName
		return u.String(), nil
	}

	pairs := strings.Fields(connString)
	for i, pair := range pairs {
		if strings.HasPrefix(pair, "dbname=") {
			pairs[i] = "dbname=" + newName
		}
	}
	return strings.Join(pairs, " "), nil
}
