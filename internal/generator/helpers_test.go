package generator

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/dgallion1/docfill/internal/wordml"
	"github.com/fumiama/go-docx"
)

// run builds a run holding one text fragment per string.
func run(texts ...string) *wordml.Run {
	r := &wordml.Run{}
	for _, t := range texts {
		r.Texts = append(r.Texts, &wordml.Text{Value: t})
	}
	return r
}

// para builds a paragraph with a single run.
func para(texts ...string) *wordml.Paragraph {
	return &wordml.Paragraph{Runs: []*wordml.Run{run(texts...)}}
}

// paraRuns builds a paragraph with one run per argument.
func paraRuns(runs ...*wordml.Run) *wordml.Paragraph {
	return &wordml.Paragraph{Runs: runs}
}

func cell(paras ...*wordml.Paragraph) *wordml.Cell {
	return &wordml.Cell{Paragraphs: paras}
}

func row(cells ...*wordml.Cell) *wordml.Row {
	return &wordml.Row{Cells: cells}
}

func table(rows ...*wordml.Row) *wordml.Table {
	return &wordml.Table{Rows: rows}
}

func body(items ...wordml.Block) *wordml.Body {
	return &wordml.Body{Items: items}
}

func document(items ...wordml.Block) *wordml.Document {
	return &wordml.Document{Body: body(items...)}
}

// templateBytes renders a minimal package with one paragraph per line.
func templateBytes(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	for _, l := range lines {
		doc.AddParagraph().AddText(l)
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return buf.Bytes()
}

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`
	documentTail = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
)

// documentXML wraps body content in a main document part.
func documentXML(bodyXML string) string {
	return documentHead + bodyXML + documentTail
}

// packageBytes zips a hand-written main document part with the parts Word
// needs to open it.
func packageBytes(t *testing.T, docXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, body string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", docXML},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			t.Fatalf("create %s: %v", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			t.Fatalf("write %s: %v", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close package: %v", err)
	}
	return buf.Bytes()
}

// partBytes returns one part of a package.
func partBytes(t *testing.T, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		var out bytes.Buffer
		if _, err := out.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return out.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}
