package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type presignUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type presignDownloadResponse struct {
	URL string `json:"url"`
}

// handlePresignUpload hands out a short-lived PUT URL so file bytes go
// straight to the blob store, never through this server.
func (s *Server) handlePresignUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.uploads.PresignedPutURL(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{internal: "Server error preparing upload"})
		return
	}
	writeJSON(w, http.StatusOK, presignUploadResponse{Key: key, URL: url})
}

// handlePresignDownload resolves a stored object key to a short-lived GET
// URL. The key is the wildcard remainder of the path, slashes included.
func (s *Server) handlePresignDownload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeMessage(w, http.StatusBadRequest, "Missing object key")
		return
	}

	url, err := s.uploads.PresignedGetURL(r.Context(), key)
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{internal: "Server error preparing download"})
		return
	}
	writeJSON(w, http.StatusOK, presignDownloadResponse{URL: url})
}
