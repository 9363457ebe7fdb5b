// Package preview renders the text of a document as a plain HTML page.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderPackage parses a saved package and renders it with Render.
func RenderPackage(pkg *bytes.Reader, title string) ([]byte, error) {
	doc, err := docx.Parse(pkg, pkg.Size())
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return Render(doc, title)
}

// Render builds an HTML page with one <p> per body paragraph and one <table>
// per body table. Formatting is not carried over.
func Render(doc *docx.Docx, title string) ([]byte, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(withAttr(element(atom.Meta), "charset", "utf-8"))
	titleEl := element(atom.Title)
	titleEl.AppendChild(text(title))
	head.AppendChild(titleEl)
	htmlEl.AppendChild(head)

	bodyEl := element(atom.Body)
	htmlEl.AppendChild(bodyEl)

	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			bodyEl.AppendChild(paragraph(it))
		case *docx.Table:
			bodyEl.AppendChild(table(it))
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func table(t *docx.Table) *html.Node {
	tbl := element(atom.Table)
	tbody := element(atom.Tbody)
	tbl.AppendChild(tbody)
	for _, row := range t.TableRows {
		tr := element(atom.Tr)
		for _, cell := range row.TableCells {
			td := element(atom.Td)
			for _, p := range cell.Paragraphs {
				td.AppendChild(paragraph(p))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return tbl
}

func paragraph(p *docx.Paragraph) *html.Node {
	n := element(atom.P)
	if s := paragraphText(p); s != "" {
		n.AppendChild(text(s))
	}
	return n
}

func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return sb.String()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}
