package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "markdown fence",
			input:    "```markdown\n# Acme\n\nSummary text\n```",
			expected: "# Acme\n\nSummary text",
		},
		{
			name:     "bare fence",
			input:    "```\n## Overview\n```",
			expected: "## Overview",
		},
		{
			name:     "unfenced text is trimmed",
			input:    "  # Acme\n- point  ",
			expected: "# Acme\n- point",
		},
		{
			name:     "fence without newline",
			input:    "```Acme builds anvils```",
			expected: "Acme builds anvils",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
