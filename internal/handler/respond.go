package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/archivo/archivo/internal/middleware"
	"github.com/archivo/archivo/internal/service"
)

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	body := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		body["request_id"] = reqID
	}
	writeJSON(w, status, map[string]interface{}{"error": body})
}

// errEmptyBody is returned by readJSON when the request has no body
var errEmptyBody = errors.New("request body is empty")

// readJSON decodes the request body. Unknown fields are ignored.
func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}

// writeDecodeError maps a readJSON failure to a client error.
// Wrong JSON types are reported like missing fields, as a validation error.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error",
			fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type.String()))
		return
	}
	writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
}

// writeValidationError writes a 422 for service validation failures.
// It reports false when err is not a validation error.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) bool {
	ve, ok := service.IsValidation(err)
	if !ok {
		return false
	}
	writeError(w, r, http.StatusUnprocessableEntity, "validation_error", ve.Error())
	return true
}
