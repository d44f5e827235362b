package http

import "testing"

func TestFormatReais(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{150, "R$ 1,50"},
		{15050, "R$ 150,50"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-27550, "-R$ 275,50"},
	}

	for _, tt := range tests {
		if got := formatReais(tt.cents); got != tt.want {
			t.Errorf("formatReais(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Maria  ", "Maria"},
		{"strips control characters", "Mar\x00ia\x07", "Maria"},
		{"keeps accented text", "Alimentação", "Alimentação"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.input); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-06-10")
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	if d.Year() != 2024 || d.Month() != 6 || d.Day() != 10 {
		t.Errorf("parseDate() = %v, want 2024-06-10", d)
	}

	for _, bad := range []string{"", "10/06/2024", "2024-6-10", "hoje"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) expected error", bad)
		}
	}
}
