package twilio

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(84) 99999-0000", "+5584999990000"},
		{"84999990000", "+5584999990000"},
		{"+7 912 345-67-89", "+79123456789"},
		{" +1 (555) 010-0000 ", "+15550100000"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
