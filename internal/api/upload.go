package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/datasource"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// upload is one file read from a multipart form.
type upload struct {
	Name string
	Data []byte
}

// errTooLarge marks an upload that exceeded MaxUploadBytes.
var errTooLarge = errors.New("file too large")

// parseForm limits the request body and parses the multipart form. Callers
// must defer r.MultipartForm.RemoveAll() on success.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	// Two files plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// readFile reads a named multipart file, enforcing the upload limit.
func (s *Server) readFile(r *http.Request, field string) (upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return upload{}, fmt.Errorf("%s is required: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return upload{}, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return upload{}, fmt.Errorf("%s exceeds max size (%d bytes): %w", field, s.cfg.MaxUploadBytes, errTooLarge)
	}
	return upload{Name: sanitizeFilename(header.Filename), Data: data}, nil
}

// readInputs reads the template and data files shared by every generation
// endpoint and writes the error response itself when they are unusable.
func (s *Server) readInputs(w http.ResponseWriter, r *http.Request) (template, data upload, ok bool) {
	template, err := s.readFile(r, "template")
	if err != nil {
		uploadError(w, err)
		return template, data, false
	}
	if !strings.EqualFold(filepath.Ext(template.Name), ".docx") {
		jsonError(w, fmt.Sprintf("unsupported template type: %s", filepath.Ext(template.Name)), http.StatusBadRequest)
		return template, data, false
	}

	data, err = s.readFile(r, "data")
	if err != nil {
		uploadError(w, err)
		return template, data, false
	}
	if !datasource.IsSupportedExtension(data.Name) {
		jsonError(w, fmt.Sprintf("unsupported data type: %s", filepath.Ext(data.Name)), http.StatusBadRequest)
		return template, data, false
	}
	return template, data, true
}

func uploadError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, errTooLarge) {
		code = http.StatusRequestEntityTooLarge
	}
	jsonError(w, err.Error(), code)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// outputName derives the download name for a filled template.
func outputName(templateName string) string {
	base := strings.TrimSuffix(templateName, filepath.Ext(templateName))
	return base + "-filled.docx"
}
