package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_Alternation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare letters", "Hello ##name!", []string{"##name"}},
		{"dotted path", "##user.name", []string{"##user.name"}},
		{"letters and digit", "##item1 and ##item2", []string{"##item1", "##item2"}},
		{"only one digit", "##item12", []string{"##item1"}},
		{"dotted wins over bare", "##a.b", []string{"##a.b"}},
		{"digit after dotted path is not part of tag", "##ab.c1", []string{"##ab.c"}},
		{"marker then digit", "##1 ##2abc", nil},
		{"double dot falls back to bare", "##a..b", []string{"##a"}},
		{"second segment needs letters", "##a.1", []string{"##a"}},
		{"only one dot consumed", "##a.b.c", []string{"##a.b"}},
		{"single marker", "#name", nil},
		{"non ascii letters rejected", "##éclair", nil},
		{"underscore stops the tag", "##first_name", []string{"##first"}},
		{"adjacent tags", "##a##b", []string{"##a", "##b"}},
		{"triple marker", "###abc", []string{"##abc"}},
		{"mixed case", "##UserName", []string{"##UserName"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tag := range Find(tt.input) {
				got = append(got, tag.Raw)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_Offsets(t *testing.T) {
	input := "Hello ##user.name, balance: ##balance"
	got := Find(input)
	require.Len(t, got, 2)

	assert.Equal(t, "##user.name", input[got[0].Start:got[0].End])
	assert.Equal(t, "user.name", got[0].Path())
	assert.Equal(t, "##balance", input[got[1].Start:got[1].End])
	assert.Equal(t, "balance", got[1].Path())
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("total: ##amount"))
	assert.False(t, Match("no placeholders here"))
	assert.False(t, Match("## 12"))
}

func TestAll_StopsEarly(t *testing.T) {
	var seen []string
	for tag := range All("##a ##b ##c") {
		seen = append(seen, tag.Raw)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"##a", "##b"}, seen)
}

func TestDistinct_FirstSeenOrder(t *testing.T) {
	got := Distinct("##b ##a ##b ##c ##a")
	assert.Equal(t, []string{"##b", "##a", "##c"}, got)
}

func TestTag_Resolvable(t *testing.T) {
	assert.True(t, Tag{Raw: "##name"}.Resolvable())
	assert.False(t, Tag{Raw: "##"}.Resolvable())
	assert.False(t, Tag{Raw: "##  "}.Resolvable())
}
