package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Fix login flow",
			expected: "Fix login flow",
		},
		{
			name:     "html markup removed",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "scripts dropped",
			input:    "ok<script>alert(1)</script>",
			expected: "ok",
		},
		{
			name:     "entities survive as text",
			input:    "Tom & Jerry <i>ship</i>",
			expected: "Tom & Jerry ship",
		},
		{
			name:     "zero width characters removed",
			input:    "in\u200b progress\u202e",
			expected: "in progress",
		},
		{
			name:     "newlines kept",
			input:    "line one\nline two",
			expected: "line one\nline two",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Sanitize(tc.input))
		})
	}
}
