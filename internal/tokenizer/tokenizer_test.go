package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty string", "", []string{}},
		{"single word", "Apple", []string{"apple"}},
		{"multiple words", "Red Delicious Apple", []string{"red", "delicious", "apple"}},
		{"extra whitespace", "  green \t apple \n", []string{"green", "apple"}},
		{"punctuation is kept", "rock'n'roll, baby", []string{"rock'n'roll,", "baby"}},
		{"unicode", "Crème Brûlée", []string{"crème", "brûlée"}},
		{"only whitespace", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeAll(t *testing.T) {
	got := TokenizeAll("Green Apple", "apple pie", "", "PIE")
	want := []string{"green", "apple", "pie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeAll() = %v, want %v", got, want)
	}
}

func TestNGrams(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want []string
	}{
		{"bigrams", "apple", 2, []string{"ap", "pp", "pl", "le"}},
		{"duplicates collapse", "aaaa", 2, []string{"aa"}},
		{"shorter than n", "a", 2, nil},
		{"exactly n", "ab", 2, []string{"ab"}},
		{"trigrams", "abcd", 3, []string{"abc", "bcd"}},
		{"zero n", "abc", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NGrams(tt.s, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("NGrams(%q, %d) has %d grams, want %d (%v)", tt.s, tt.n, len(got), len(tt.want), got)
			}
			for _, g := range tt.want {
				if _, ok := got[g]; !ok {
					t.Errorf("NGrams(%q, %d) missing %q", tt.s, tt.n, g)
				}
			}
		})
	}
}
