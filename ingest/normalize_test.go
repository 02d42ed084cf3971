package ingest

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  Serial No  ", "serial no"},
		{"strips periods", "Sr.No.", "sr no"},
		{"strips underscores", "SR_NO", "sr no"},
		{"strips mixed punctuation", "House-No./Flat:", "house no flat"},
		{"collapses whitespace runs", "voter   id    card", "voter id card"},
		{"devanagari danda", "अनु क्र।", "अनु क्र"},
		{"empty input", "", ""},
		{"only punctuation", "._-:/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.input); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnderscoreFold(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"SR_NO", "SR NO", true},
		{"SR_NO", "sr no", true},
		{"Sr.No.", "sr no", false}, // periods survive this tier
	}

	for _, tt := range tests {
		got := underscoreFold(tt.a) == underscoreFold(tt.b)
		if got != tt.same {
			t.Errorf("underscoreFold(%q) == underscoreFold(%q): got %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}
