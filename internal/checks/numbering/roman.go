package numbering

import "strings"

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// parseRoman converts a Roman numeral to its integer value. Returns
// false for strings containing non-Roman characters or a non-positive
// result. Labels are preserved verbatim elsewhere; this value is used
// only for ordering.
func parseRoman(s string) (int, bool) {
	s = strings.ToLower(s)
	if s == "" {
		return 0, false
	}
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}
