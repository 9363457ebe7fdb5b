// Package generator fills ##path tags in a .docx template with values from a
// data tree.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/dgallion1/docfill/internal/wordml"
)

// Stats summarizes one fill pass.
type Stats struct {
	Scopes    int `json:"scopes"`    // Paragraphs selected for splicing
	Fragments int `json:"fragments"` // Text fragments that had at least one tag resolved
	Lookups   int `json:"lookups"`   // Resolver calls
}

// Generator fills templates. It holds no per-document state and may be
// shared between goroutines working on different documents.
type Generator struct {
	log *slog.Logger
	sel selector
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for per-document debug output.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate reads a template package, fills its tags from data and returns
// the saved package positioned at its start. Package errors are returned
// wrapped; no partial output is produced.
func (g *Generator) Generate(template io.Reader, data resolve.Resolver) (*bytes.Reader, error) {
	pkg, err := Open(template)
	if err != nil {
		return nil, err
	}

	stats := g.Fill(pkg.Document, data)
	g.log.Debug("filled template",
		"scopes", stats.Scopes,
		"fragments", stats.Fragments,
		"lookups", stats.Lookups,
	)

	return Save(pkg)
}

// Fill replaces the tags of every selected scope in doc in place.
func (g *Generator) Fill(doc *wordml.Document, data resolve.Resolver) Stats {
	var stats Stats
	for _, p := range g.sel.Select(doc.Body) {
		stats.Scopes++
		touched, calls := spliceParagraph(p, data)
		stats.Fragments += touched
		stats.Lookups += calls
	}
	return stats
}

// Open copies the template into memory and parses it.
func Open(template io.Reader) (*wordml.Package, error) {
	buf, err := io.ReadAll(template)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	pkg, err := wordml.Open(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return pkg, nil
}

// Save writes the package and returns a reader over its bytes. Only the
// changed text of the main document part differs from the template.
func Save(pkg *wordml.Package) (*bytes.Reader, error) {
	var out bytes.Buffer
	if _, err := pkg.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return bytes.NewReader(out.Bytes()), nil
}
