package response

import (
	"encoding/json"
	"log"
	"net/http"
)

type Response struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Errors any    `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("response json encode: %v", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, status int, kind, msg string) {
	JSON(w, status, Response{
		Status: status,
		Error:  msg,
		Kind:   kind,
	})
}

func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, "not_found", msg)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, "unauthenticated", msg)
}

func Conflict(w http.ResponseWriter, msg string) {
	Error(w, http.StatusConflict, "conflict", msg)
}

// UnprocessableEntity writes an itemized validation failure; errs is a list
// of per-field/per-index entries.
func UnprocessableEntity(w http.ResponseWriter, errs any) {
	JSON(w, http.StatusUnprocessableEntity, Response{
		Status: http.StatusUnprocessableEntity,
		Error:  "validation failed",
		Kind:   "validation_error",
		Errors: errs,
	})
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "transaction_error", "internal server error")
}
