package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/adapter/http/validation"
)

// UploadVideo accepts a multipart "video" file part of at most 1 GiB, MIME
// type video/mp4, and hands it to the publish pipeline. The request blocks
// until probing, the fast-start rewrite and the object-store push finish.
func (h *Handlers) UploadVideo() http.HandlerFunc {
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

		r.Body = http.MaxBytesReader(w, r.Body, h.maxVideoBytes)

		file, header, err := r.FormFile("video")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "video is not a file", err)
			return
		}
		defer file.Close()

		if header.Size > h.maxVideoBytes {
			respondWithError(w, http.StatusBadRequest, "max upload size exceeded", nil)
			return
		}

		mediaType, err := validation.VideoMediaType(header.Header.Get("Content-Type"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "video must be an MP4", err)
			return
		}

		if err := h.videoSvc.UploadVideo(r.Context(), userID, videoID, file, mediaType); err != nil {
			respondDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, nil)
	}
}
