// internal/handlers/base.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"classifieds/internal/config"
)

// BaseHandler carries what every resource handler shares.
type BaseHandler struct {
	Cfg       *config.Config
	validator *validator.Validate
}

func NewBaseHandler(cfg *config.Config) *BaseHandler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &BaseHandler{
		Cfg:       cfg,
		validator: validator.New(),
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func (b *BaseHandler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return NewAPIError(http.StatusBadRequest, "invalid_request_body", "Request body is required", err)
		}
		return NewAPIError(http.StatusBadRequest, "invalid_request_body", "Invalid request body", err)
	}
	if err := b.validator.Struct(dst); err != nil {
		return NewAPIError(http.StatusBadRequest, "validation_failed", err.Error(), err)
	}
	return nil
}

// pathID reads a UUID route parameter; anything else is a 400 invalid_id.
func pathID(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return "", NewAPIError(http.StatusBadRequest, "invalid_id", name+" must be a valid UUID", err)
	}
	return id.String(), nil
}
