package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	pkghttp "github.com/refindhq/refind/pkg/http"
)

// UploadHandler serves stored item images by filename
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates a new UploadHandler rooted at dir
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Serve streams the named upload. Filenames are flat: anything that
// resolves outside the uploads directory is rejected.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		pkghttp.WriteNotFound(w, "file not found")
		return
	}

	path := filepath.Join(h.dir, filename)
	http.ServeFile(w, r, path)
}
