package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lib/pq"

	"classifieds/internal/interfaces"
)

// APIError is an error that already knows its HTTP status and public message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func NewAPIError(status int, code, message string, err error) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message, Err: err}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func badRequest(code, message string) *APIError {
	return NewAPIError(http.StatusBadRequest, code, message, nil)
}

// notFound turns sql.ErrNoRows into a 404 naming the resource and passes other errors on.
func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NewAPIError(http.StatusNotFound, resource+"_not_found", resource+" not found", err)
	}
	return err
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
)

// uniqueConstraintCodes names unique violations that have their own error code.
var uniqueConstraintCodes = map[string]string{
	"clients_email_key":       "email_in_use",
	"clients_email_lower_key": "email_in_use",
}

// respondError writes the error envelope for err. Outside production the cause
// chain is added as "detail".
func (b *BaseHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := map[string]any{
		"error":   "internal_error",
		"message": "Internal server error",
	}

	var (
		apiErr  *APIError
		blocked *interfaces.DeletionBlockedError
		pqErr   *pq.Error
	)
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		body["error"] = apiErr.Code
		body["message"] = apiErr.Message
	case errors.As(err, &blocked):
		status = http.StatusBadRequest
		body["error"] = "deletion_blocked"
		body["message"] = blocked.Error()
		body["references"] = blocked.References
	case errors.Is(err, sql.ErrNoRows):
		status = http.StatusNotFound
		body["error"] = "not_found"
		body["message"] = "Resource not found"
	case errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation:
		status = http.StatusBadRequest
		body["error"] = "duplicate"
		body["message"] = "A record with the same value already exists"
		if code, ok := uniqueConstraintCodes[pqErr.Constraint]; ok {
			body["error"] = code
		}
		if pqErr.Constraint != "" {
			body["constraint"] = pqErr.Constraint
		}
	case errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation:
		status = http.StatusBadRequest
		body["error"] = "invalid_reference"
		body["message"] = "A referenced record does not exist"
		if pqErr.Constraint != "" {
			body["constraint"] = pqErr.Constraint
		}
	case errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepr:
		status = http.StatusBadRequest
		body["error"] = "invalid_value"
		body["message"] = "A value has an invalid format"
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	} else {
		log.Printf("[%s] %s %s -> %d: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, status, err)
	}

	if !b.Cfg.IsProduction() && err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
