package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// soundexDigits maps consonants to the six Soundex classes.
// Vowels (and y) map to 0 and separate runs; h and w are silent.
var soundexDigits = [26]byte{
	'0', '1', '2', '3', '0', '1', '2', // a b c d e f g
	'h', '0', '2', '2', '4', '5', '5', // h i j k l m n
	'0', '1', '2', '6', '2', '3', '0', // o p q r s t u
	'1', 'w', '2', '0', '2', // v w x y z
}

// Soundex returns the 4-character Soundex code of s, upper-cased.
// Accented Latin letters count as their base letter; other non-letters are ignored
// and a string without such letters yields "".
func Soundex(s string) string {
	letters := asciiLetters(s)
	if len(letters) == 0 {
		return ""
	}

	code := make([]byte, 0, 4)
	code = append(code, letters[0]-'a'+'A')
	last := soundexDigits[letters[0]-'a']

	for _, c := range letters[1:] {
		d := soundexDigits[c-'a']
		switch {
		case d == 'h' || d == 'w':
			continue
		case d == '0':
			last = '0'
		case d != last:
			code = append(code, d)
			last = d
		}
		if len(code) == 4 {
			break
		}
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// metaphoneInitials rewrites leading letter pairs whose first letter is silent.
var metaphoneInitials = map[string]string{
	"kn": "n", "gn": "n", "pn": "n", "wr": "r", "ae": "e", "wh": "w",
}

// Metaphone returns a simplified phonetic key for s.
//
// This is not classical Metaphone: it applies a fixed set of consonant substitutions
// (ph->f, sh/ch->x, th->0, ck->k, soft/hard c and g, q->k, x->ks, z->s, d->t, v->f),
// drops vowels after the first letter, keeps h/w/y only before a vowel and collapses
// repeated letters.
func Metaphone(s string) string {
	w := string(asciiLetters(s))
	if w == "" {
		return ""
	}
	if len(w) >= 2 {
		if rep, ok := metaphoneInitials[w[:2]]; ok {
			w = rep + w[2:]
		}
	}
	if w[0] == 'x' {
		w = "s" + w[1:]
	}

	out := make([]byte, 0, len(w))
	for i := 0; i < len(w); i++ {
		c := w[i]
		var next byte
		if i+1 < len(w) {
			next = w[i+1]
		}

		switch {
		case isVowel(c):
			if i == 0 {
				out = append(out, c)
			}
		case c == 'p' && next == 'h':
			out = append(out, 'f')
			i++
		case (c == 's' || c == 'c') && next == 'h':
			out = append(out, 'x')
			i++
		case c == 't' && next == 'h':
			out = append(out, '0')
			i++
		case c == 'c' && next == 'k':
			out = append(out, 'k')
			i++
		case c == 'c':
			if isSoftener(next) {
				out = append(out, 's')
			} else {
				out = append(out, 'k')
			}
		case c == 'g':
			if isSoftener(next) {
				out = append(out, 'j')
			} else {
				out = append(out, 'k')
			}
		case c == 'q':
			out = append(out, 'k')
		case c == 'x':
			out = append(out, 'k', 's')
		case c == 'z':
			out = append(out, 's')
		case c == 'd':
			out = append(out, 't')
		case c == 'v':
			out = append(out, 'f')
		case c == 'h' || c == 'w' || c == 'y':
			if isVowel(next) {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}

	collapsed := make([]byte, 0, len(out))
	for i, c := range out {
		if i > 0 && c == out[i-1] {
			continue
		}
		collapsed = append(collapsed, c)
	}
	return strings.ToUpper(string(collapsed))
}

// asciiLetters lower-cases s, strips diacritics (ü -> u) and keeps only a-z.
func asciiLetters(s string) []byte {
	// A Transformer is stateful, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	letters := make([]byte, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			letters = append(letters, byte(r))
		}
	}
	return letters
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isSoftener(c byte) bool {
	return c == 'e' || c == 'i' || c == 'y'
}
