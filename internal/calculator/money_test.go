package calculator

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1000, "R$ 1.000,00"},
		{1234.5, "R$ 1.234,50"},
		{1234567.891, "R$ 1.234.567,89"},
		{-250, "-R$ 250,00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(8.3333); got != "8,33%" {
		t.Errorf("expected 8,33%%, got %q", got)
	}
}
