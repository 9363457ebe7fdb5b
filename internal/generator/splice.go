package generator

import (
	"strings"

	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/dgallion1/docfill/internal/tags"
	"github.com/dgallion1/docfill/internal/wordml"
)

// Splice replaces the tags in a single text fragment and returns the number
// of resolver calls made.
//
// Each distinct matched literal is resolved once and replaced everywhere it
// occurs in the fragment, in first-seen order. Replacement is by literal
// content, so values are never re-scanned for tags and a tag split across two
// fragments is not recognized. Tags with a blank path are left as they are;
// tags whose path does not resolve become the empty string.
func Splice(t *wordml.Text, r resolve.Resolver) int {
	calls := 0
	for _, raw := range tags.Distinct(t.Value) {
		tag := tags.Tag{Raw: raw}
		if !tag.Resolvable() {
			continue
		}
		value, _ := r.Lookup(tag.Path())
		calls++
		t.Value = strings.ReplaceAll(t.Value, raw, value)
	}
	return calls
}

// spliceParagraph splices every text fragment of p's runs.
func spliceParagraph(p *wordml.Paragraph, r resolve.Resolver) (fragmentsTouched, calls int) {
	for _, t := range p.Fragments() {
		n := Splice(t, r)
		if n > 0 {
			fragmentsTouched++
		}
		calls += n
	}
	return fragmentsTouched, calls
}
