package strings

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world this is a long string",
			maxLen:   15,
			expected: "hello world ...",
		},
		{
			name:     "newlines replaced with spaces",
			input:    "hello\nworld",
			maxLen:   20,
			expected: "hello world",
		},
		{
			name:     "other whitespace kept",
			input:    "hello\t  world",
			maxLen:   20,
			expected: "hello\t  world",
		},
		{
			name:     "unicode safe",
			input:    "héllo wörld ünïcödé",
			maxLen:   10,
			expected: "héllo w...",
		},
		{
			name:     "no room for ellipsis",
			input:    "hello",
			maxLen:   3,
			expected: "hel",
		},
		{
			name:     "negative length",
			input:    "hello",
			maxLen:   -1,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Preview(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestPreviewLength(t *testing.T) {
	long := strings.Repeat("x", ResponsePreviewLen+1)
	result := Preview(long, ResponsePreviewLen)
	if len(result) != ResponsePreviewLen {
		t.Errorf("Preview length = %d, want %d", len(result), ResponsePreviewLen)
	}
	if !strings.HasSuffix(result, Ellipsis) {
		t.Errorf("Preview(%q) should end with %q", result, Ellipsis)
	}
}

func TestHead(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello\nworld", 20, "hello world"},
		{"hello world", 5, "hello"},
		{"ünïcödé", 3, "ünï"},
		{"hello", 0, ""},
	}

	for _, tt := range tests {
		result := Head(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("Head(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
	}
}
