package logger

import "testing"

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title unchanged", "my vacation video", "my vacation video"},
		{"email unchanged", "user@example.com", "user@example.com"},
		{"empty string", "", ""},
		{"newline escaped", "title\nERROR: forged entry", "title\\nERROR: forged entry"},
		{"carriage return escaped", "a\rb", "a\\rb"},
		{"tab escaped", "a\tb", "a\\tb"},
		{"null byte escaped", "a\x00b", "a\\x00b"},
		{"ansi escape escaped", "\x1b[2Jcleared", "\\x1b[2Jcleared"},
		{"bell escaped", "ding\x07", "ding\\x07"},
		{"del escaped", "x\x7fy", "x\\x7fy"},
		{"unicode preserved", "café 中文 👋", "café 中文 👋"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeForLog(tt.input); got != tt.expected {
				t.Errorf("SanitizeForLog(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
