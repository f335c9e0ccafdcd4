package fields

import "testing"

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12,50 €", 12.50, true},
		{"12.50", 12.50, true},
		{"prix unitaire 5,5", 5.5, true},
		{"15 €", 15, true},
		{"1250", 1250, true}, // locale normalizer fallback
		{"gratuit", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got := ExtractPrice(tt.in)
		if tt.ok {
			if got == nil {
				t.Errorf("ExtractPrice(%q) = nil, want %v", tt.in, tt.want)
				continue
			}
			if *got != tt.want {
				t.Errorf("ExtractPrice(%q) = %v, want %v", tt.in, *got, tt.want)
			}
			continue
		}
		if got != nil {
			t.Errorf("ExtractPrice(%q) = %v, want nil", tt.in, *got)
		}
	}
}
