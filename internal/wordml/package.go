package wordml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	// DefaultDocumentPart is used when the package relationships do not name
	// the main document.
	DefaultDocumentPart = "word/document.xml"

	officeDocumentRel = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// Package is an opened .docx archive. Only the main document part is
// parsed; every other part is copied unchanged when the package is written.
type Package struct {
	Document *Document

	files    []*zip.File
	mainPart string
}

type relationships struct {
	Relationship []struct {
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// Open reads a package and parses its main document part.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	name := mainPart(parts)
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("read package: missing %s", name)
	}
	raw, err := readPart(f)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	return &Package{Document: doc, files: zr.File, mainPart: name}, nil
}

// MainPart is the archive name of the main document part.
func (p *Package) MainPart() string {
	return p.mainPart
}

// WriteTo writes the package with the main document part re-encoded from
// Document. Entries keep their order; every other entry is copied raw.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, f := range p.files {
		if f.Name != p.mainPart {
			if err := zw.Copy(f); err != nil {
				return cw.n, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := fw.Write(p.Document.Bytes()); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("close package: %w", err)
	}
	return cw.n, nil
}

// mainPart resolves the officeDocument relationship from _rels/.rels.
func mainPart(parts map[string]*zip.File) string {
	f, ok := parts["_rels/.rels"]
	if !ok {
		return DefaultDocumentPart
	}
	raw, err := readPart(f)
	if err != nil {
		return DefaultDocumentPart
	}
	var rels relationships
	if err := xml.Unmarshal(raw, &rels); err != nil {
		return DefaultDocumentPart
	}
	for _, rel := range rels.Relationship {
		if rel.Type == officeDocumentRel {
			return strings.TrimPrefix(path.Clean("/"+rel.Target), "/")
		}
	}
	return DefaultDocumentPart
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return raw, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
