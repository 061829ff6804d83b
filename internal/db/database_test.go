package db

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestWaitForDBRetriesUntilPingSucceeds(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	if err := waitForDB(conn, 3, 0); err != nil {
		t.Fatalf("waitForDB: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWaitForDBGivesUp(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	refused := errors.New("connection refused")
	mock.ExpectPing().WillReturnError(refused)
	mock.ExpectPing().WillReturnError(refused)

	if err := waitForDB(conn, 2, 0); !errors.Is(err, refused) {
		t.Fatalf("expected wrapped ping error, got %v", err)
	}
}
