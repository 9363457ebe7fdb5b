package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Lookup(t *testing.T) {
	r, err := NewJSON([]byte(`{
		"user": {"name": "Ana", "tags": ["a", "b"]},
		"balance": 42,
		"active": true,
		"nothing": null,
		"item1": "first"
	}`))
	require.NoError(t, err)

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"user.name", "Ana", true},
		{"balance", "42", true},
		{"active", "true", true},
		{"item1", "first", true},
		{"user.tags", `["a", "b"]`, true},
		{"nothing", "", false},
		{"missing", "", false},
		{"missing.field", "", false},
		{"user.missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := r.Lookup(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestJSON_LookupBooleansAreLowercase(t *testing.T) {
	r, err := FromValue(map[string]any{
		"flags": map[string]any{"paid": true, "late": false},
	})
	require.NoError(t, err)

	paid, ok := r.Lookup("flags.paid")
	require.True(t, ok)
	assert.Equal(t, "true", paid)

	late, ok := r.Lookup("flags.late")
	require.True(t, ok)
	assert.Equal(t, "false", late)
}

func TestNewJSON_Invalid(t *testing.T) {
	_, err := NewJSON([]byte(`{"user":`))
	assert.Error(t, err)
}

func TestFromValue(t *testing.T) {
	r, err := FromValue(map[string]any{
		"user":    map[string]any{"name": "Ana"},
		"balance": 42,
	})
	require.NoError(t, err)

	v, ok := r.Lookup("user.name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", v)

	v, ok = r.Lookup("balance")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestCounting(t *testing.T) {
	c := &Counting{Resolver: Static{"a": "1"}}
	c.Lookup("a")
	c.Lookup("b")

	assert.Equal(t, 2, c.Calls)
	assert.Equal(t, []string{"a", "b"}, c.Paths)
}

func TestResolverFunc(t *testing.T) {
	var r Resolver = ResolverFunc(func(path string) (string, bool) {
		return "<" + path + ">", true
	})
	v, ok := r.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "<x>", v)
}
