package textutil

import "testing"

func TestTransliterate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Motörhead", "Motorhead"},
		{"Björk", "Bjork"},
		{"Café Tacvba", "Cafe Tacvba"},
		{"Sigur Rós", "Sigur Ros"},
		{"Ærø", "AEro"},
		{"straße", "strasse"},
		{"Łódź", "Lodz"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Transliterate(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
