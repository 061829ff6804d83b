package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lib/pq"

	"classifieds/internal/config"
	"classifieds/internal/interfaces"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"api error", badRequest("no_fields", "No fields to update"), http.StatusBadRequest, "no_fields"},
		{"not found", fmt.Errorf("get: %w", sql.ErrNoRows), http.StatusNotFound, "not_found"},
		{"named not found", notFound("campaign", sql.ErrNoRows), http.StatusNotFound, "campaign_not_found"},
		{"duplicate", fmt.Errorf("create: %w", &pq.Error{Code: "23505", Constraint: "areas_name_key"}), http.StatusBadRequest, "duplicate"},
		{"email case clash", fmt.Errorf("create client: %w", &pq.Error{Code: "23505", Constraint: "clients_email_lower_key"}), http.StatusBadRequest, "email_in_use"},
		{"foreign key", &pq.Error{Code: "23503"}, http.StatusBadRequest, "invalid_reference"},
		{"bad uuid", fmt.Errorf("get client: %w", &pq.Error{Code: "22P02"}), http.StatusBadRequest, "invalid_value"},
		{"blocked", &interfaces.DeletionBlockedError{Resource: "area", References: map[string]int64{"cities": 1}}, http.StatusBadRequest, "deletion_blocked"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	b := NewBaseHandler(&config.Config{Environment: "development"})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			b.respondError(w, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)

			if w.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, w.Code)
			}
			resp := decodeBody(t, w)
			if resp["error"] != tc.code {
				t.Fatalf("expected %s got %v", tc.code, resp["error"])
			}
			if resp["detail"] == nil {
				t.Fatalf("expected detail outside production")
			}
		})
	}
}

func TestRespondErrorHidesDetailInProduction(t *testing.T) {
	b := NewBaseHandler(&config.Config{Environment: "production"})

	w := httptest.NewRecorder()
	b.respondError(w, httptest.NewRequest(http.MethodGet, "/x", nil), fmt.Errorf("dial tcp 10.0.0.5:5432: refused"))

	resp := decodeBody(t, w)
	if _, ok := resp["detail"]; ok {
		t.Fatalf("detail must be hidden in production: %v", resp)
	}
	if resp["message"] != "Internal server error" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(3, 10, 30)
	if p.TotalPages != 3 || p.HasNext {
		t.Fatalf("unexpected %+v", p)
	}
	p = newPagination(1, 10, 0)
	if p.TotalPages != 0 || p.HasNext {
		t.Fatalf("unexpected %+v", p)
	}
}
