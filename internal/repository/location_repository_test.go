package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"classifieds/internal/interfaces"
)

func TestAreaGetByIDIncludesCities(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM areas WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("a1", "North"))
	mock.ExpectQuery(`SELECT id, name, area_id FROM cities WHERE area_id = \$1 ORDER BY name`).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "area_id"}).
			AddRow("c1", "Haifa", "a1").
			AddRow("c2", "Nahariya", "a1"))

	area, err := NewAreaRepository(db).GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(area.Cities) != 2 {
		t.Fatalf("expected 2 cities got %d", len(area.Cities))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCityDeleteBlockedByAds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ad_cities WHERE city_id = \$1`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	err = NewCityRepository(db).Delete(context.Background(), "c1")
	var blocked *interfaces.DeletionBlockedError
	if !errors.As(err, &blocked) || blocked.Resource != "city" {
		t.Fatalf("expected blocked city delete, got %v", err)
	}
	if err.Error() != "cannot delete city: it still has 5 ads" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
