package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/infrastructure/logger"
	"github.com/bnema/reelvault/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	if code >= 500 {
		logger.Error.Printf("%s: %v", msg, err)
	}
	respondWithJSON(w, code, errorResponse{Error: msg})
}

// respondDomainError maps service/domain errors onto the HTTP taxonomy:
// bad input 400, bad credentials 401, non-owner 403, missing 404, conflict
// 409; anything unclassified is an opaque 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not found", err)
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "not the owner", err)
	case errors.Is(err, domain.ErrAlreadyExists):
		respondWithError(w, http.StatusConflict, "already exists", err)
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidEmail):
		respondWithError(w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrInvalidCreds),
		errors.Is(err, service.ErrInvalidToken):
		respondWithError(w, http.StatusUnauthorized, err.Error(), err)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", err)
	}
}
