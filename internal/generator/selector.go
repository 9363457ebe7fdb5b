package generator

import (
	"github.com/dgallion1/docfill/internal/tags"
	"github.com/dgallion1/docfill/internal/wordml"
)

// ScopeKind identifies which level of the body a flattened text came from.
type ScopeKind int

const (
	ScopeParagraph ScopeKind = iota
	ScopeRow
	ScopeCell
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeParagraph:
		return "paragraph"
	case ScopeRow:
		return "row"
	case ScopeCell:
		return "cell"
	}
	return "unknown"
}

// selector finds the paragraphs that may contain a tag.
type selector struct {
	// observe, when set, is called for every scope whose text is flattened
	// and tested.
	observe func(kind ScopeKind, text string)
}

func (s *selector) matches(kind ScopeKind, text string) bool {
	if s.observe != nil {
		s.observe(kind, text)
	}
	return tags.Match(text)
}

// Select returns, in document order, the top-level paragraphs whose text
// matches the tag grammar plus the paragraphs of every matching cell in a
// matching table row. A row without a match is skipped before any of its
// cells are examined.
func (s *selector) Select(body *wordml.Body) []*wordml.Paragraph {
	var out []*wordml.Paragraph
	seen := make(map[*wordml.Paragraph]struct{})
	add := func(p *wordml.Paragraph) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, item := range body.Items {
		switch it := item.(type) {
		case *wordml.Paragraph:
			if s.matches(ScopeParagraph, it.Text()) {
				add(it)
			}
		case *wordml.Table:
			for _, p := range s.tableParagraphs(it) {
				add(p)
			}
		}
	}
	return out
}

func (s *selector) tableParagraphs(tbl *wordml.Table) []*wordml.Paragraph {
	var out []*wordml.Paragraph
	for _, row := range tbl.Rows {
		if !s.matches(ScopeRow, row.Text()) {
			continue
		}
		for _, cell := range row.Cells {
			if !s.matches(ScopeCell, cell.Text()) {
				continue
			}
			out = append(out, cell.Paragraphs...)
		}
	}
	return out
}
