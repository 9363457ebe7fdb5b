package generator

import (
	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/dgallion1/docfill/internal/tags"
	"github.com/dgallion1/docfill/internal/wordml"
)

// TagReport describes one distinct tag found in a template.
type TagReport struct {
	Tag      string `json:"tag"`
	Path     string `json:"path"`
	Count    int    `json:"count"`
	Resolved bool   `json:"resolved"`
	Value    string `json:"value,omitempty"`
}

// Inspect lists the distinct tags the fill pass would see, in first-seen
// order, without modifying doc. When data is nil nothing is resolved.
func (g *Generator) Inspect(doc *wordml.Document, data resolve.Resolver) []TagReport {
	var out []TagReport
	index := make(map[string]int)

	for _, p := range g.sel.Select(doc.Body) {
		for _, t := range p.Fragments() {
			for tag := range tags.All(t.Value) {
				if i, ok := index[tag.Raw]; ok {
					out[i].Count++
					continue
				}
				rep := TagReport{Tag: tag.Raw, Path: tag.Path(), Count: 1}
				if data != nil && tag.Resolvable() {
					rep.Value, rep.Resolved = data.Lookup(rep.Path)
				}
				index[tag.Raw] = len(out)
				out = append(out, rep)
			}
		}
	}
	return out
}
