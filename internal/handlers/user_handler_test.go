package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"classifieds/internal/config"
	"classifieds/internal/models"
)

func userRouter(repo *mockUserRepo, cfg *config.Config) http.Handler {
	h := NewUserHandler(NewBaseHandler(cfg), repo)

	r := chi.NewRouter()
	r.Post("/users", h.CreateUser)
	r.Post("/users/login", h.Login)
	r.Get("/users/{id}", h.GetUser)
	r.Delete("/users/{id}", h.DeleteUser)
	return r
}

func TestDeleteUserNotFoundReturnsJSON(t *testing.T) {
	r := userRouter(&mockUserRepo{users: map[string]*models.User{}}, &config.Config{})

	req := httptest.NewRequest(http.MethodDelete, "/users/"+unknownID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
	if resp := decodeBody(t, w); resp["error"] != "user_not_found" {
		t.Fatalf("expected user_not_found, got %v", resp)
	}
}

func TestCreateUserStoresHashNotPassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	r := userRouter(repo, &config.Config{})

	body, _ := json.Marshal(map[string]any{
		"email":    "Office@Example.com",
		"username": "office",
		"password": "correct horse",
	})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("response must not expose the password hash: %s", w.Body.String())
	}
	u := repo.users["user-1"]
	if u == nil || u.Email != "office@example.com" {
		t.Fatalf("unexpected stored user %+v", u)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "office@example.com", Username: "office", PasswordHash: string(hash)},
	}}
	r := userRouter(repo, &config.Config{JWTSecret: "secret", JWTExpiresInSeconds: 600})

	login := func(password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{"email": "office@example.com", "password": password})
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := login("correct horse")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken == "" || resp.ExpiresIn != 600 || resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	if w := login("wrong password"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginWithoutSecretIsUnavailable(t *testing.T) {
	r := userRouter(&mockUserRepo{users: map[string]*models.User{}}, &config.Config{})

	body, _ := json.Marshal(map[string]any{"email": "office@example.com", "password": "x"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
