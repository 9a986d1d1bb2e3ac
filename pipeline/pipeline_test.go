package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadPassages(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"one per line", "first\nsecond\nthird\n", []string{"first", "second", "third"}},
		{"blank lines skipped", "a\n\n\nb\n", []string{"a", "b"}},
		{"whitespace lines skipped", "a\n   \t\nb", []string{"a", "b"}},
		{"surrounding space trimmed", "  hello world  \n", []string{"hello world"}},
		{"empty file", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := ReadPassages(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("passage %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadPassagesMissingFile(t *testing.T) {
	if _, err := ReadPassages("no/such/file.txt"); err == nil {
		t.Fatal("expected error")
	}
}
