package pdf

import (
	"strings"
	"testing"
)

func TestRawText_DecodeRaw_LiteralStrings(t *testing.T) {
	decoder := NewRawText()

	tests := []struct {
		name     string
		data     string
		expected []string
	}{
		{
			name: "content stream with text operators",
			data: "BT /F1 12 Tf (Rental Application for John Smith) Tj ET\n" +
				"BT (Market Rent: $1,500.00) Tj ET",
			expected: []string{
				"Rental Application for John Smith",
				"Market Rent: $1,500.00",
			},
		},
		{
			name:     "escaped parentheses inside a string",
			data:     `(balance \(overdue\))`,
			expected: []string{"balance (overdue)"},
		},
		{
			name:     "escaped newline",
			data:     `(line one\nline two)`,
			expected: []string{"line one\nline two"},
		},
		{
			name:     "whitespace-only strings are dropped",
			data:     "(   ) (actual content)",
			expected: []string{"actual content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decoder.DecodeRaw([]byte(tt.data))

			for _, want := range tt.expected {
				if !strings.Contains(result, want) {
					t.Errorf("expected decoded text to contain %q, got %q", want, result)
				}
			}
		})
	}
}

func TestRawText_DecodeRaw_PrintableFallback(t *testing.T) {
	decoder := NewRawText()

	// No literal strings at all: printable runs are kept, binary dropped.
	data := []byte("garbage\x00\x01\x02Phone: 555-987-6543\x00\x03xy")
	result := decoder.DecodeRaw(data)

	if !strings.Contains(result, "Phone: 555-987-6543") {
		t.Errorf("expected printable run in output, got %q", result)
	}
	if !strings.Contains(result, "garbage") {
		t.Errorf("expected leading run in output, got %q", result)
	}
	if strings.Contains(result, "xy") {
		t.Errorf("runs shorter than four characters should be dropped, got %q", result)
	}
}

func TestRawText_DecodeRaw_EmptyInput(t *testing.T) {
	decoder := NewRawText()

	if result := decoder.DecodeRaw(nil); result != "" {
		t.Errorf("expected empty output for nil input, got %q", result)
	}
	if result := decoder.DecodeRaw([]byte{}); result != "" {
		t.Errorf("expected empty output for empty input, got %q", result)
	}
}

func TestRawText_DecodeRaw_JoinsStringsWithNewlines(t *testing.T) {
	decoder := NewRawText()

	result := decoder.DecodeRaw([]byte("(first) (second) (third)"))

	if result != "first\nsecond\nthird" {
		t.Errorf("expected newline-joined strings, got %q", result)
	}
}
