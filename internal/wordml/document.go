// Package wordml reads the main part of a WordprocessingML package into a
// small text model and writes edits back into the original bytes.
//
// Only the text-bearing skeleton is modelled: body paragraphs and tables,
// rows, cells, the direct runs of a paragraph and the <w:t> elements of a
// run. Every other element is skipped while parsing and kept verbatim when
// saving, because saving copies the source document and splices the new
// character data of changed text elements into it.
package wordml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Block is a body item: *Paragraph or *Table.
type Block interface {
	block()
}

// Document is the parsed main document part.
type Document struct {
	Body *Body

	raw   []byte
	texts []*Text
}

type Body struct {
	Items []Block
}

type Paragraph struct {
	Runs []*Run
}

type Run struct {
	Texts []*Text
}

// Text is one <w:t> element. Value may be changed freely; the element is
// rewritten on save only when Value differs from what was parsed.
type Text struct {
	Value string

	orig       string
	start, end int64
	parsed     bool
}

type Table struct {
	Rows []*Row
}

type Row struct {
	Cells []*Cell
}

type Cell struct {
	Paragraphs []*Paragraph
}

func (*Paragraph) block() {}
func (*Table) block()     {}

// Changed reports whether the value differs from the parsed one.
func (t *Text) Changed() bool {
	return t.parsed && t.Value != t.orig
}

// ErrNoBody is returned for a document part without a <w:body>.
var ErrNoBody = errors.New("document has no body")

// ParseDocument parses the XML of a main document part.
func ParseDocument(raw []byte) (*Document, error) {
	p := &parser{d: xml.NewDecoder(bytes.NewReader(raw))}
	doc := &Document{raw: raw}

	for {
		tok, err := p.d.Token()
		if err == io.EOF {
			return nil, ErrNoBody
		}
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			body, err := p.body()
			if err != nil {
				return nil, fmt.Errorf("parse document: %w", err)
			}
			doc.Body = body
			doc.texts = p.texts
			return doc, nil
		}
	}
}

// Bytes returns the document XML with every changed text element rewritten.
// All other bytes are those of the source.
func (d *Document) Bytes() []byte {
	var out bytes.Buffer
	out.Grow(len(d.raw))

	var last int64
	for _, t := range d.texts {
		if !t.Changed() {
			continue
		}
		out.Write(d.raw[last:t.start])
		xml.EscapeText(&out, []byte(t.Value))
		last = t.end
	}
	out.Write(d.raw[last:])
	return out.Bytes()
}

type parser struct {
	d     *xml.Decoder
	texts []*Text
}

// children calls fn for every direct child element of the element whose
// start tag was just read and skips those fn does not consume.
func (p *parser) children(fn func(se xml.StartElement) (bool, error)) error {
	for {
		tok, err := p.d.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			consumed, err := fn(t)
			if err != nil {
				return err
			}
			if !consumed {
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) body() (*Body, error) {
	b := &Body{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		switch se.Name.Local {
		case "p":
			para, err := p.paragraph()
			if err != nil {
				return false, err
			}
			b.Items = append(b.Items, para)
			return true, nil
		case "tbl":
			tbl, err := p.table()
			if err != nil {
				return false, err
			}
			b.Items = append(b.Items, tbl)
			return true, nil
		}
		return false, nil
	})
	return b, err
}

func (p *parser) paragraph() (*Paragraph, error) {
	para := &Paragraph{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		if se.Name.Local != "r" {
			return false, nil
		}
		r, err := p.run()
		if err != nil {
			return false, err
		}
		para.Runs = append(para.Runs, r)
		return true, nil
	})
	return para, err
}

func (p *parser) run() (*Run, error) {
	r := &Run{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		if se.Name.Local != "t" {
			return false, nil
		}
		t, err := p.text()
		if err != nil {
			return false, err
		}
		r.Texts = append(r.Texts, t)
		return true, nil
	})
	return r, err
}

// text reads the character data of a <w:t> element and records the byte
// span between its start and end tags.
func (p *parser) text() (*Text, error) {
	start := p.d.InputOffset()
	end := start
	var sb strings.Builder
	for {
		tok, err := p.d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := p.d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			v := sb.String()
			text := &Text{Value: v, orig: v, start: start, end: end, parsed: true}
			p.texts = append(p.texts, text)
			return text, nil
		}
		end = p.d.InputOffset()
	}
}

func (p *parser) table() (*Table, error) {
	tbl := &Table{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		if se.Name.Local != "tr" {
			return false, nil
		}
		row, err := p.row()
		if err != nil {
			return false, err
		}
		tbl.Rows = append(tbl.Rows, row)
		return true, nil
	})
	return tbl, err
}

func (p *parser) row() (*Row, error) {
	row := &Row{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		if se.Name.Local != "tc" {
			return false, nil
		}
		c, err := p.cell()
		if err != nil {
			return false, err
		}
		row.Cells = append(row.Cells, c)
		return true, nil
	})
	return row, err
}

func (p *parser) cell() (*Cell, error) {
	c := &Cell{}
	err := p.children(func(se xml.StartElement) (bool, error) {
		if se.Name.Local != "p" {
			return false, nil
		}
		para, err := p.paragraph()
		if err != nil {
			return false, err
		}
		c.Paragraphs = append(c.Paragraphs, para)
		return true, nil
	})
	return c, err
}
