package dictionary_test

import (
	"testing"

	"zvm/dictionary"
	"zvm/memory"
	"zvm/ztext"
)

func buildDictionary(t *testing.T, version uint8, words []string) (*memory.Memory, uint32, *ztext.Alphabets) {
	t.Helper()
	alphabets := ztext.DefaultAlphabets(version)
	entryWordLen := 4
	if version > 3 {
		entryWordLen = 6
	}
	entryLen := entryWordLen + 1 // one byte of opaque data per entry

	separators := []uint8{'.', ','}
	base := uint32(0)
	buf := []uint8{uint8(len(separators))}
	buf = append(buf, separators...)
	buf = append(buf, uint8(entryLen))
	buf = append(buf, 0, uint8(len(words)))

	for i, w := range words {
		encoded := ztext.Encode(w, alphabets, entryWordLen/2*3)
		buf = append(buf, encoded...)
		buf = append(buf, uint8(i)) // opaque per-word marker
	}

	mem := memory.New(buf, uint32(len(buf)))
	return mem, base, alphabets
}

func TestParseAndLookup(t *testing.T) {
	mem, base, alphabets := buildDictionary(t, 3, []string{"north", "south"})
	decoder := ztext.NewDecoder(mem, 3, alphabets, 0)

	dict, err := dictionary.Parse(mem, base, 3, decoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := ztext.Encode("north", alphabets, dict.EncodedWordLength()/2*3)
	addr := dict.Lookup(encoded)
	if addr == 0 {
		t.Fatal("expected north to be found")
	}

	unknown := ztext.Encode("xyzzy", alphabets, dict.EncodedWordLength()/2*3)
	if dict.Lookup(unknown) != 0 {
		t.Error("expected an unrecognized word to return 0")
	}
}

func TestTokenizeSplitsOnSeparatorsAndSpaces(t *testing.T) {
	mem, base, alphabets := buildDictionary(t, 3, []string{"north", "go"})
	decoder := ztext.NewDecoder(mem, 3, alphabets, 0)
	dict, err := dictionary.Parse(mem, base, 3, decoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokens := dict.Tokenize("go north.", alphabets)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens (go, north, .), got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "go" || tokens[1].Text != "north" || tokens[2].Text != "." {
		t.Errorf("unexpected token texts: %+v", tokens)
	}
	if tokens[0].DictAddr == 0 || tokens[1].DictAddr == 0 {
		t.Errorf("expected go and north to resolve in the dictionary")
	}
}
