package http

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/bnema/reelvault/internal/infrastructure/logger"
)

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *Handlers) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		user, err := h.authSvc.CreateUser(r.Context(), req.Email, req.Password)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		logger.Info.Printf("user created: %s", logger.SanitizeForLog(user.Email))
		respondWithJSON(w, http.StatusCreated, user)
	}
}

func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := clientAddr(r)

		if allowed, remaining := h.rateLimiter.Check(clientID); !allowed {
			w.Header().Set("Retry-After", remaining.Round(time.Second).String())
			respondWithError(w, http.StatusTooManyRequests, "too many login attempts", nil)
			return
		}

		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// Slow down brute force: each consecutive failure for this
			// client waits longer before the 401 goes out.
			h.attemptTracker.RecordFailure(clientID)
			time.Sleep(h.backoff.Duration(h.attemptTracker.GetFailedAttempts(clientID)))
			respondDomainError(w, err)
			return
		}

		h.attemptTracker.RecordSuccess(clientID)
		h.rateLimiter.Reset(clientID)

		respondWithJSON(w, http.StatusOK, loginResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Token: token,
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
