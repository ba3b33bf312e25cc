package dictionary

import "zvm/ztext"

// Token is one word found by Tokenize: its text, its byte offset in the
// original input, and (once resolved) the dictionary entry address.
type Token struct {
	Text       string
	Position   int
	DictAddr   uint16
}

// Tokenize splits input on spaces and the dictionary's separator set, per
// spec.md's sread/tokenise behavior: each separator is also emitted as its
// own single-character token (punctuation like "." or "," is meaningful to
// parsers), while plain spaces only delimit and are never tokens
// themselves. Every token is looked up against the dictionary and encoded
// with alphabets for matching; unrecognized words get a zero DictAddr
// rather than causing an error, per spec.md's "game logic decides whether
// an unrecognized word is fatal" stance.
func (d *Dictionary) Tokenize(input string, alphabets *ztext.Alphabets) []Token {
	var tokens []Token
	word := ""
	wordStart := 0

	flush := func() {
		if word != "" {
			tokens = append(tokens, Token{Text: word, Position: wordStart})
			word = ""
		}
	}

	for i, r := range []byte(input) {
		switch {
		case r == ' ':
			flush()
		case d.IsSeparator(r):
			flush()
			tokens = append(tokens, Token{Text: string(r), Position: i})
		default:
			if word == "" {
				wordStart = i
			}
			word += string(r)
		}
	}
	flush()

	for i := range tokens {
		// Encode wants a Z-character count, not the entry's byte length:
		// encodedWordLength bytes is encodedWordLength/2 packed words of 3
		// Z-characters each.
		encoded := ztext.Encode(tokens[i].Text, alphabets, (d.encodedWordLength/2)*3)
		tokens[i].DictAddr = d.Lookup(encoded)
	}
	return tokens
}
