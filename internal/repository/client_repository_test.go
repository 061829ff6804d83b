package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

func TestClientDeleteBlockedByCampaigns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM campaigns WHERE client_id = \$1`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err = NewClientRepository(db).Delete(context.Background(), "c1")

	var blocked *interfaces.DeletionBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected DeletionBlockedError got %v", err)
	}
	if blocked.References["campaigns"] != 2 {
		t.Fatalf("unexpected references %v", blocked.References)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestClientDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM campaigns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewClientRepository(db).Delete(context.Background(), "c1"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestClientExistsByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Dana@Example.com", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewClientRepository(db).ExistsByEmail(context.Background(), "Dana@Example.com", "")
	if err != nil {
		t.Fatalf("ExistsByEmail: %v", err)
	}
	if !exists {
		t.Fatalf("expected email to exist")
	}
}

func TestClientCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO clients`).
		WithArgs("Dana", "Owner", "dana@example.com", "050").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c1", now, now))
	mock.ExpectQuery(`FROM clients c\s+WHERE c.id = \$1`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "title", "email", "mobile", "count", "created_at", "updated_at"}).
			AddRow("c1", "Dana", "Owner", "dana@example.com", "050", 3, now, now))

	repo := NewClientRepository(db)
	client := &models.Client{Name: "Dana", Title: "Owner", Email: "dana@example.com", Mobile: "050"}
	if err := repo.Create(context.Background(), client); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if client.ID != "c1" {
		t.Fatalf("expected id c1 got %q", client.ID)
	}

	got, err := repo.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CampaignCount != 3 {
		t.Fatalf("expected 3 campaigns got %d", got.CampaignCount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestClientUpdateOnlyProvidedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE clients SET email = \$1, updated_at = .+ WHERE id = \$2`).
		WithArgs("new@example.com", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	email := "new@example.com"
	if err := NewClientRepository(db).Update(context.Background(), "c1", &models.UpdateClientRequest{Email: &email}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := NewClientRepository(db).Update(context.Background(), "c1", &models.UpdateClientRequest{}); err == nil {
		t.Fatalf("expected error for empty update")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
