package util

import "testing"

func TestParseAmount_Valid(t *testing.T) {
	testCases := []string{"200", "0.01", "  300 ", "-150", "0", "47800.5"}

	for _, s := range testCases {
		if _, err := ParseAmount(s); err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", s, err)
		}
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	testCases := []string{"", "   ", "two hundred", "12,5", "1.2.3"}

	for _, s := range testCases {
		if _, err := ParseAmount(s); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", s)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := map[string]string{
		"200":    "200.00",
		"47800":  "47800.00",
		"0.5":    "0.50",
		"-150":   "-150.00",
		"12.345": "12.35",
	}

	for in, want := range testCases {
		d, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", in, err)
		}
		if got := FormatAmount(d); got != want {
			t.Errorf("FormatAmount(%s) = %q, want %q", in, got, want)
		}
	}
}
