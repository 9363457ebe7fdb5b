package wordml

import "strings"

// Fragments returns the text elements of p's direct runs in document order.
func (p *Paragraph) Fragments() []*Text {
	var out []*Text
	for _, r := range p.Runs {
		out = append(out, r.Texts...)
	}
	return out
}

// Text concatenates every text fragment of the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	p.writeText(&sb)
	return sb.String()
}

// Text concatenates the text of every paragraph in the cell.
func (c *Cell) Text() string {
	var sb strings.Builder
	c.writeText(&sb)
	return sb.String()
}

// Text concatenates the text of every cell in the row.
func (r *Row) Text() string {
	var sb strings.Builder
	for _, c := range r.Cells {
		c.writeText(&sb)
	}
	return sb.String()
}

// Text flattens the whole body, one line per paragraph.
func (b *Body) Text() string {
	var lines []string
	for _, item := range b.Items {
		switch it := item.(type) {
		case *Paragraph:
			lines = append(lines, it.Text())
		case *Table:
			for _, row := range it.Rows {
				for _, c := range row.Cells {
					for _, p := range c.Paragraphs {
						lines = append(lines, p.Text())
					}
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Cell) writeText(sb *strings.Builder) {
	for _, p := range c.Paragraphs {
		p.writeText(sb)
	}
}

func (p *Paragraph) writeText(sb *strings.Builder) {
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			sb.WriteString(t.Value)
		}
	}
}
