// Package tags recognizes ##path placeholder tokens in document text.
package tags

import (
	"iter"
	"regexp"
	"strings"
)

// Marker is the two-character prefix every tag starts with.
const Marker = "##"

// Alternation order matters: dotted path first, then letters+digit, then bare
// letters. RE2 alternation is leftmost-first, so "##ab1" is one tag, not "##ab".
var pattern = regexp.MustCompile(`##[A-Za-z]+\.[A-Za-z]+|##[A-Za-z]+[0-9]|##[A-Za-z]+`)

// Tag is a single placeholder occurrence.
type Tag struct {
	Raw   string // Matched text including the marker, e.g. "##user.name"
	Start int    // Byte offset of the match in the scanned string
	End   int
}

// Path returns the lookup path: the matched text without the marker.
func (t Tag) Path() string {
	return strings.TrimPrefix(t.Raw, Marker)
}

// Resolvable reports whether the tag has a non-blank lookup path.
func (t Tag) Resolvable() bool {
	return strings.TrimSpace(t.Path()) != ""
}

// Match reports whether s contains at least one tag.
func Match(s string) bool {
	return pattern.MatchString(s)
}

// All yields the non-overlapping tags in s from left to right.
func All(s string) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		// The pattern has no anchors or boundaries, so resuming on the
		// remaining suffix finds the same matches as a single full scan.
		off := 0
		for off < len(s) {
			loc := pattern.FindStringIndex(s[off:])
			if loc == nil {
				return
			}
			start, end := off+loc[0], off+loc[1]
			if !yield(Tag{Raw: s[start:end], Start: start, End: end}) {
				return
			}
			off = end
		}
	}
}

// Find returns every tag in s in document order.
func Find(s string) []Tag {
	var out []Tag
	for t := range All(s) {
		out = append(out, t)
	}
	return out
}

// Distinct returns each distinct matched literal in s once, in the order it
// was first seen.
func Distinct(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for t := range All(s) {
		if _, ok := seen[t.Raw]; ok {
			continue
		}
		seen[t.Raw] = struct{}{}
		out = append(out, t.Raw)
	}
	return out
}
