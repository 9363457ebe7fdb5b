package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/datasource"
	"github.com/dgallion1/docfill/internal/generator"
	"github.com/dgallion1/docfill/internal/preview"
	"github.com/dgallion1/docfill/internal/resolve"
)

// handleGenerate fills the uploaded template synchronously and returns the
// resulting package.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	template, data, ok := s.readInputs(w, r)
	if !ok {
		return
	}

	resolver, err := datasource.Resolver(bytes.NewReader(data.Data), data.Name)
	if err != nil {
		jsonError(w, "invalid data: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.gen.Generate(bytes.NewReader(template.Data), resolver)
	if err != nil {
		s.log.Warn("generate failed", "template", template.Name, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputName(template.Name)))
	w.Header().Set("Content-Length", fmt.Sprint(out.Len()))
	if _, err := io.Copy(w, out); err != nil {
		s.log.Warn("write response failed", "template", template.Name, "error", err)
	}
}

// handleInspect lists the tags in the uploaded template. The data file is
// optional; when present each tag reports whether it resolves.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	template, err := s.readFile(r, "template")
	if err != nil {
		uploadError(w, err)
		return
	}

	var resolver resolve.Resolver
	if len(r.MultipartForm.File["data"]) > 0 {
		data, err := s.readFile(r, "data")
		if err != nil {
			uploadError(w, err)
			return
		}
		jr, err := datasource.Resolver(bytes.NewReader(data.Data), data.Name)
		if err != nil {
			jsonError(w, "invalid data: "+err.Error(), http.StatusBadRequest)
			return
		}
		resolver = jr
	}

	pkg, err := generator.Open(bytes.NewReader(template.Data))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	reports := s.gen.Inspect(pkg.Document, resolver)
	if reports == nil {
		reports = []generator.TagReport{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"template": template.Name,
		"tags":     reports,
	})
}

// handlePreview fills the template and returns its text as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	template, data, ok := s.readInputs(w, r)
	if !ok {
		return
	}

	resolver, err := datasource.Resolver(bytes.NewReader(data.Data), data.Name)
	if err != nil {
		jsonError(w, "invalid data: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.gen.Generate(bytes.NewReader(template.Data), resolver)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	page, err := preview.RenderPackage(out, strings.TrimSuffix(template.Name, filepath.Ext(template.Name)))
	if err != nil {
		s.log.Warn("preview failed", "template", template.Name, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		s.log.Warn("write response failed", "template", template.Name, "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
