package http

import (
	"io"
	"net/http"
	"path/filepath"

	"partsphere-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler serves files written by LocalStorage. Only mounted in
// local-storage mode; bucket URLs bypass the app entirely.
type UploadHandler struct {
	local *storage.LocalStorage
}

func NewUploadHandler(local *storage.LocalStorage) *UploadHandler {
	return &UploadHandler{local: local}
}

func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" || key != filepath.Base(key) {
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	}

	file, err := h.local.Open(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	io.Copy(w, file)
}
