package migrations

import (
	"strings"
	"testing"
	"testing/fstest"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"sql/0002_gadgets.up.sql":   {Data: []byte("CREATE TABLE gadgets (id INT)")},
		"sql/0001_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id INT)")},
		"sql/0001_widgets.down.sql": {Data: []byte("DROP TABLE widgets")},
	}
}

func TestParseMigrationFilename(t *testing.T) {
	version, name, err := parseMigrationFilename("0007_ad_media.up.sql")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if version != 7 || name != "ad_media" {
		t.Fatalf("got %d %q", version, name)
	}

	if _, _, err := parseMigrationFilename("init.up.sql"); err == nil {
		t.Fatalf("expected error for filename without version")
	}
}

func TestGetMigrationFilesSortedWithOptionalDown(t *testing.T) {
	files, err := getMigrationFiles(testFS())
	if err != nil {
		t.Fatalf("getMigrationFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 migrations got %d", len(files))
	}
	if files[0].Version != 1 || files[1].Version != 2 {
		t.Fatalf("unexpected order %+v", files)
	}
	if files[0].Down != "DROP TABLE widgets" {
		t.Fatalf("expected down script, got %q", files[0].Down)
	}
	if files[1].Down != "" {
		t.Fatalf("expected empty down script, got %q", files[1].Down)
	}
}

func TestRunMigrationsAppliesOnlyPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE gadgets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(2, "gadgets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := runMigrations(db, testFS()); err != nil {
		t.Fatalf("runMigrations: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRollbackLastRunsDownScript(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT version FROM schema_migrations ORDER BY version DESC").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE widgets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM schema_migrations").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := rollbackLast(db, testFS()); err != nil {
		t.Fatalf("rollbackLast: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEmbeddedMigrationsParse(t *testing.T) {
	files, err := getMigrationFiles(migrationFiles)
	if err != nil {
		t.Fatalf("getMigrationFiles: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for _, f := range files {
		if f.Down == "" {
			t.Fatalf("migration %04d_%s has no down script", f.Version, f.Name)
		}
	}
}

func TestEmbeddedMigrationsCarryMediaVersionAndEmailIndex(t *testing.T) {
	files, err := getMigrationFiles(migrationFiles)
	if err != nil {
		t.Fatalf("getMigrationFiles: %v", err)
	}

	want := map[string]string{
		"ad_media_version":    "media_version BIGINT NOT NULL DEFAULT 0",
		"clients_email_lower": "ON clients (LOWER(email))",
	}
	for _, f := range files {
		if fragment, ok := want[f.Name]; ok {
			if !strings.Contains(f.Up, fragment) {
				t.Fatalf("migration %04d_%s does not contain %q", f.Version, f.Name, fragment)
			}
			delete(want, f.Name)
		}
	}
	if len(want) != 0 {
		t.Fatalf("missing migrations: %v", want)
	}
}
