package http

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/adapter/http/validation"
	"github.com/bnema/reelvault/internal/domain"
)

// UploadThumbnail accepts a multipart "thumbnail" file part of at most 10 MiB
// and an allow-listed image type, and attaches it to the caller's video.
func (h *Handlers) UploadThumbnail() http.HandlerFunc {
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

		r.Body = http.MaxBytesReader(w, r.Body, h.maxThumbnailBytes)
		if err := r.ParseMultipartForm(h.maxThumbnailBytes); err != nil {
			respondWithError(w, http.StatusBadRequest, "could not parse multipart form", err)
			return
		}

		file, header, err := r.FormFile("thumbnail")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "thumbnail is not a file", err)
			return
		}
		defer file.Close()

		if header.Size > h.maxThumbnailBytes {
			respondWithError(w, http.StatusBadRequest, "max upload size exceeded", nil)
			return
		}

		mediaType, err := validation.ThumbnailMediaType(header.Header.Get("Content-Type"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "thumbnail must be a JPEG or PNG", err)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "could not read thumbnail", err)
			return
		}

		thumb := &domain.Thumbnail{Data: data, MediaType: mediaType}
		if err := h.videoSvc.UploadThumbnail(r.Context(), userID, videoID, thumb); err != nil {
			respondDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, nil)
	}
}

// GetThumbnail serves the stored thumbnail bytes with the MIME type they were
// uploaded with. Responses are never cacheable; a re-upload must show up
// immediately.
func (h *Handlers) GetThumbnail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, err := uuid.Parse(r.PathValue("videoID"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid video ID", err)
			return
		}

		thumb, err := h.videoSvc.GetThumbnail(r.Context(), videoID)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", thumb.MediaType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(thumb.Data); err != nil {
			// Response already started; nothing useful left to send.
			return
		}
	}
}
