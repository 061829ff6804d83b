package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"classifieds/internal/interfaces"
	"classifieds/internal/middleware"
	"classifieds/internal/models"
)

type UserHandler struct {
	*BaseHandler
	users interfaces.UserRepository
}

func NewUserHandler(base *BaseHandler, users interfaces.UserRepository) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

// @Tags Users
// @Summary List users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]interface{}
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// @Tags Users
// @Summary Create user
// @Accept json
// @Produce json
// @Param body body models.CreateUserRequest true "Create user request"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Router /api/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     req.Username,
		Name:         req.Name,
		Bio:          req.Bio,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// @Tags Users
// @Summary Log in
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if h.Cfg.JWTSecret == "" {
		h.respondError(w, r, NewAPIError(http.StatusServiceUnavailable, "auth_disabled", "Login is not configured", nil))
		return
	}

	invalid := NewAPIError(http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)

	u, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, r, invalid)
			return
		}
		h.respondError(w, r, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		h.respondError(w, r, invalid)
		return
	}

	ttl := time.Duration(h.Cfg.JWTExpiresInSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	token, err := middleware.IssueToken(h.Cfg.JWTSecret, u.ID, u.Email, ttl)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(ttl / time.Second),
		User:        u,
	})
}

// @Tags Users
// @Summary Get user
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("user", err))
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Tags Users
// @Summary Update user
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body models.UpdateUserRequest true "Update user request"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("user", err))
		return
	}

	var req models.UpdateUserRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		u.PasswordHash = string(hash)
	}

	if err := h.users.Update(r.Context(), u); err != nil {
		h.respondError(w, r, notFound("user", err))
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Tags Users
// @Summary Delete user
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("user", err))
		return
	}

	writeJSONMessage(w, http.StatusOK, "User has been deleted successfully")
}
