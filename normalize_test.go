package graphviz

import (
	"testing"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "already normalized", input: "chapter_1", want: "chapter_1"},
		{name: "uppercase is lowered", input: "Test Chapter", want: "test_chapter"},
		{name: "hyphen becomes underscore", input: "getting-started", want: "getting_started"},
		{name: "each separator maps on its own", input: "a - b", want: "a___b"},
		{name: "tabs and newlines are whitespace", input: "a\tb\nc", want: "a_b_c"},
		{name: "punctuation is dropped", input: "Hello, World!", want: "hello_world"},
		{name: "symbols are dropped", input: "C++ & Go (v2.0)", want: "c__go_v20"},
		{name: "digits are kept", input: "Part 42", want: "part_42"},
		{name: "non-ASCII letters are dropped", input: "Café Déjà", want: "caf_dj"},
		{name: "only symbols", input: "!@#$%^&*()", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeID(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeID_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Test Chapter",
		"Graph Name",
		"  leading and trailing  ",
		"Ünïcödé-Ñame_42",
		"日本語のタイトル",
		"a--b__c  d",
	}

	for _, input := range inputs {
		once := NormalizeID(input)
		twice := NormalizeID(once)
		if once != twice {
			t.Errorf("NormalizeID not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeID_Charset(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Ünïcödé-Ñame_42",
		"日本語のタイトル",
		"Σίσυφος",
		"emoji 🎉 party",
		"İstanbul",
		"K", // Kelvin sign lowers to ASCII 'k'
		"\x00\x7f control",
	}

	for _, input := range inputs {
		got := NormalizeID(input)
		for _, r := range got {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
				t.Errorf("NormalizeID(%q) = %q contains %q", input, got, r)
			}
		}
	}
}

func BenchmarkNormalizeID(b *testing.B) {
	input := "Getting Started With Graphviz: A Guide (Part 2)"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizeID(input)
	}
}
