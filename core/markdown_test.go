package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
		excludes string
	}{
		{"empty", "", "", "<"},
		{"emphasis", "Great **footwork** today", "<strong>footwork</strong>", ""},
		{"list", "- smash\n- drop", "<li>smash</li>", ""},
		{"raw html omitted", "<script>alert(1)</script>", "", "<script>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RenderMarkdown(tc.src)
			require.NoError(t, err)
			if tc.contains != "" {
				assert.Contains(t, out, tc.contains)
			}
			if tc.excludes != "" {
				assert.False(t, strings.Contains(out, tc.excludes), out)
			}
		})
	}
}
