package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"scheme-matcher/internal/service"
	"scheme-matcher/internal/util"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		util.Error("Failed to encode JSON response", util.ErrorField(err))
	}
}

// respondWithError sends an error response as {"error": "..."}.
func respondWithError(w http.ResponseWriter, statusCode int, err error) {
	util.Warn("HTTP error response",
		util.ErrorField(err),
		util.Int("status_code", statusCode),
	)
	respondWithJSON(w, statusCode, errorBody{Error: err.Error()})
}

// getStatusCode maps service errors to HTTP status codes.
func getStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
