package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "ascii quotes",
			content:  "\"Hello world\"\n",
			expected: []string{"Hello world"},
		},
		{
			name:     "curly quotes",
			content:  "“Welcome to the show.”\n",
			expected: []string{"Welcome to the show."},
		},
		{
			name:     "mixed quote styles on one line",
			content:  "“Mixed opener.\"\n",
			expected: []string{"Mixed opener."},
		},
		{
			name:     "unquoted lines dropped",
			content:  "Hello world\n\"Kept line\"\nAnother bare line\n",
			expected: []string{"Kept line"},
		},
		{
			name:     "blank lines and empty quotes dropped",
			content:  "\n\n\"\"\n\"   \"\n\"Real content\"\n",
			expected: []string{"Real content"},
		},
		{
			name:     "single quote char line dropped",
			content:  "\"\n\"Kept\"\n",
			expected: []string{"Kept"},
		},
		{
			name:     "inner whitespace trimmed after stripping quotes",
			content:  "\"  padded sentence  \"\n",
			expected: []string{"padded sentence"},
		},
		{
			name:     "order preserved",
			content:  "\"One\"\n\"Two\"\n\"Three\"\n",
			expected: []string{"One", "Two", "Three"},
		},
		{
			name:     "wrong quote orientation dropped",
			content:  "”Backwards opener”\n“Backwards closer“\n",
			expected: nil,
		},
		{
			name:     "windows line endings",
			content:  "\"First\"\r\n\"Second\"\r\n",
			expected: []string{"First", "Second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			if len(got) != len(tt.expected) {
				t.Fatalf("Parse produced %d sentences, want %d: %v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.txt")
	content := "“The games begin today.”\nnarrator note, not spoken\n\"And the crowd roars.\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	sentences, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	want := []string{"The games begin today.", "And the crowd roars."}
	if len(sentences) != len(want) {
		t.Fatalf("expected %d sentences, got %v", len(want), sentences)
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, sentences[i], want[i])
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}
