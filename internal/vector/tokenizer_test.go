package vector

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "punctuation becomes separators",
			input: "Git-Log v2!!",
			want:  []string{"git", "log", "v2"},
		},
		{
			name:  "short tokens dropped",
			input: "a an ls cd",
			want:  []string{"an", "ls", "cd"},
		},
		{
			name:  "digits kept",
			input: "base64 md5sum",
			want:  []string{"base64", "md5sum"},
		},
		{
			name:  "duplicates and order preserved",
			input: "tar tar gzip tar",
			want:  []string{"tar", "tar", "gzip", "tar"},
		},
		{
			name:  "whitespace runs collapse",
			input: "  find \t . -name\n*.go ",
			want:  []string{"find", "name", "go"},
		},
		{
			name:  "only punctuation",
			input: "!!! ???",
			want:  nil,
		},
		{
			name:  "non-ascii becomes separators",
			input: "café résumé",
			want:  []string{"caf", "sum"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Tokenize(test.input)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "Compress a Directory with tar -czvf archive.tar.gz"
	first := Tokenize(input)
	second := Tokenize(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical token streams, got %v and %v", first, second)
	}
}
