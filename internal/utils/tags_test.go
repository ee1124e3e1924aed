package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"comma string", "a, b", []string{"a", "b"}},
		{"bracket string", "[a, b]", []string{"a", "b"}},
		{"native sequence", []any{"a", "b"}, []string{"a", "b"}},
		{"string slice", []string{" a ", "b"}, []string{"a", "b"}},
		{"semicolons", "go; concurrency;patterns", []string{"go", "concurrency", "patterns"}},
		{"quoted tokens", `["go", 'web']`, []string{"go", "web"}},
		{"empty tokens dropped", "a,, ,b,", []string{"a", "b"}},
		{"duplicates kept", "a, a", []string{"a", "a"}},
		{"numbers in sequence", []any{float64(2024), "go"}, []string{"2024", "go"}},
		{"single scalar", true, []string{"true"}},
		{"missing", nil, []string{}},
		{"empty string", "", []string{}},
		{"empty brackets", "[]", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.value)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
