package numbering

import "testing"

func TestParseRoman(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"i", 1, true},
		{"iv", 4, true},
		{"ix", 9, true},
		{"XIV", 14, true},
		{"xlii", 42, true},
		{"mcmxcix", 1999, true},
		{"", 0, false},
		{"abc", 0, false},
		{"i2", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseRoman(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("parseRoman(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
