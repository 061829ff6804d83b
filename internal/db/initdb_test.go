package db

import "testing"

func TestExtractDBName(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/classifieds?sslmode=disable": "classifieds",
		"host=localhost user=u dbname=office sslmode=disable":       "office",
	}
	for conn, want := range cases {
		got, err := extractDBName(conn)
		if err != nil {
			t.Fatalf("extractDBName(%q): %v", conn, err)
		}
		if got != want {
			t.Fatalf("extractDBName(%q) = %q, want %q", conn, got, want)
		}
	}

	if _, err := extractDBName("host=localhost user=u"); err == nil {
		t.Fatalf("expected error without dbname")
	}
}

func TestReplaceDBName(t *testing.T) {
	got, err := replaceDBName("postgres://u:p@localhost:5432/classifieds?sslmode=disable", "postgres")
	if err != nil {
		t.Fatalf("replaceDBName: %v", err)
	}
	if got != "postgres://u:p@localhost:5432/postgres?sslmode=disable" {
		t.Fatalf("unexpected url %q", got)
	}

	got, err = replaceDBName("host=localhost dbname=office", "postgres")
	if err != nil {
		t.Fatalf("replaceDBName: %v", err)
	}
	if got != "host=localhost dbname=postgres" {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestValidDBName(t *testing.T) {
	if !validDBName("classifieds_dev") {
		t.Fatalf("expected classifieds_dev to be valid")
	}
	if validDBName("x; DROP DATABASE y") {
		t.Fatalf("expected injected name to be rejected")
	}
}
