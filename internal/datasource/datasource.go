// Package datasource loads the data tree a template is filled from. Every
// loader produces JSON, which is what the resolver reads.
package datasource

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/resolve"
)

// Loader converts raw data-file bytes into a JSON document.
type Loader interface {
	Load(r io.Reader) ([]byte, error)
}

// SupportedExtensions lists data file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".csv":  true,
}

// UnsupportedFormatError is returned for data files with an unknown extension.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported data file extension: %q", e.Ext)
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONLoader{}, nil
	case ".yaml", ".yml":
		return &YAMLLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Resolver loads r with the loader for filename and returns a resolver over it.
func Resolver(r io.Reader, filename string) (*resolve.JSON, error) {
	l, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	data, err := l.Load(r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(filename), err)
	}
	return resolve.NewJSON(data)
}
