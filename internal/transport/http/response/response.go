package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hartantowib/account-service/internal/domain"
)

// Envelope wraps every success payload as {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody wraps every failure as {"errors": ...}: a list of field
// violations for validation failures, a message string otherwise.
type ErrorBody struct {
	Errors any `json:"errors"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with {"data": ...}.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

// Created writes a 201 response with {"data": ...}.
func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Data: data})
}

// WriteError maps a domain error to its HTTP status at this single dispatch
// point. Non-domain errors become 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		WriteJSON(w, http.StatusInternalServerError, ErrorBody{Errors: "internal error"})
		return
	}

	status := statusFromKind(de.Kind)
	if len(de.Fields) > 0 {
		WriteJSON(w, status, ErrorBody{Errors: de.Fields})
		return
	}
	WriteJSON(w, status, ErrorBody{Errors: de.Message})
}

func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrInvalidBody(err)
	}
	return nil
}
