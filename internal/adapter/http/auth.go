package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/domain"
)

type AuthService interface {
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

type contextKey string

const userIDKey contextKey = "userID"

var errNoBearerToken = errors.New("missing or malformed Authorization header")

// GetBearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func GetBearerToken(headers http.Header) (string, error) {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return "", errNoBearerToken
	}
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return "", errNoBearerToken
	}
	return token, nil
}

// AuthMiddleware rejects requests without a valid bearer token before any
// handler logic runs, and stashes the authenticated user id in the request
// context.
func AuthMiddleware(authSvc AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := GetBearerToken(r.Header)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token", err)
			return
		}

		userID, err := authSvc.ValidateToken(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid bearer token", err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
