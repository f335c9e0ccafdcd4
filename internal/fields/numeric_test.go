package fields

import (
	"fmt"
	"strings"
	"testing"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12,50", 12.50, true},
		{"12.50", 12.50, true},
		{"1 250,00", 1250.00, true},
		{"1.250,00", 1250.00, true},
		{"1,250.00", 1250.00, true},
		{"850,00 €", 850.00, true},
		{"€ 850,00", 850.00, true},
		{"127", 127, true},
		{"0,5", 0.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12,34,56", 0, false},
		{"Total", 0, false},
	}
	for _, tt := range tests {
		got := NormalizeNumber(tt.in)
		if tt.ok {
			if got == nil {
				t.Errorf("NormalizeNumber(%q) = nil, want %v", tt.in, tt.want)
				continue
			}
			if *got != tt.want {
				t.Errorf("NormalizeNumber(%q) = %v, want %v", tt.in, *got, tt.want)
			}
			continue
		}
		if got != nil {
			t.Errorf("NormalizeNumber(%q) = %v, want nil", tt.in, *got)
		}
	}
}

func TestNormalizeNumber_CommaRoundTrip(t *testing.T) {
	// Every "<int>,<dd>" string must round-trip through a comma re-format.
	for _, in := range []string{"0,01", "1,50", "12,00", "850,00", "2400,99"} {
		v := NormalizeNumber(in)
		if v == nil {
			t.Fatalf("NormalizeNumber(%q) = nil", in)
		}
		reformatted := strings.Replace(fmt.Sprintf("%.2f", *v), ".", ",", 1)
		if reformatted != in {
			t.Errorf("round trip %q -> %v -> %q", in, *v, reformatted)
		}
	}
}
