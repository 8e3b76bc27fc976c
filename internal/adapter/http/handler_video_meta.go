package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type createVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handlers) CreateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "not authenticated", nil)
			return
		}

		var req createVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		video, err := h.videoSvc.Create(r.Context(), userID, req.Title, req.Description)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, video)
	}
}

// GetVideo is the public read path; no authentication required.
func (h *Handlers) GetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, err := uuid.Parse(r.PathValue("videoID"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid video ID", err)
			return
		}

		video, err := h.videoSvc.Get(r.Context(), videoID)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, video)
	}
}

func (h *Handlers) ListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "not authenticated", nil)
			return
		}

		videos, err := h.videoSvc.ListByUser(r.Context(), userID)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, videos)
	}
}

func (h *Handlers) DeleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "not authenticated", nil)
			return
		}

		videoID, err := uuid.Parse(r.PathValue("videoID"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid video ID", err)
			return
		}

		if err := h.videoSvc.Delete(r.Context(), userID, videoID); err != nil {
			respondDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
