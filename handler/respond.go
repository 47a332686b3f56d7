package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"jansunwai/models"
	"jansunwai/service"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondWithJSON(w, statusCode, models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}

// respondWithServiceError maps a domain error kind to an HTTP status.
// Internal errors never leak the wrapped store error to the caller.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
	case service.KindNotFound:
		respondWithError(w, http.StatusNotFound, "Not found", err.Error())
	case service.KindConflict:
		respondWithError(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Printf("[handler] internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal error", "internal error")
	}
}
