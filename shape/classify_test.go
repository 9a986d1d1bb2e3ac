package shape

import "testing"

func TestNeedsShaping(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"latin", "Hello world", false},
		{"latin with punctuation", "It's 9:16, right?", false},
		{"cyrillic", "Привет мир", false},
		{"empty", "", false},
		{"devanagari", "नमस्ते दुनिया", true},
		{"tibetan", "བོད་ཡིག", true},
		{"single devanagari char in latin", "price ₹ is क", true},
		{"cjk", "こんにちは世界", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsShaping(tt.text); got != tt.want {
				t.Fatalf("NeedsShaping(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
