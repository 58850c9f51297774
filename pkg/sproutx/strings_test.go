package sproutx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringsRegistry_UnindentSmart(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tabs",
			input:    "\t\tb := 1\n\t\tif b > 0 {\n\t\t\tprintln(b)\n\t\t}",
			expected: "b := 1\nif b > 0 {\n\tprintln(b)\n}",
		},
		{
			name:     "spaces",
			input:    "    a()\n      b()",
			expected: "a()\n  b()",
		},
		{
			name:     "blank lines are ignored",
			input:    "\t\ta()\n\n\t\tb()",
			expected: "a()\n\nb()",
		},
		{
			name:     "no indentation",
			input:    "a()\n\tb()",
			expected: "a()\n\tb()",
		},
		{
			name:     "short whitespace line",
			input:    "\t\ta()\n\t",
			expected: "a()\n",
		},
	}

	registry := NewStringsRegistry()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, registry.UnindentSmart(testCase.input))
		})
	}
}
