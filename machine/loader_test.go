package machine

import (
	"strings"
	"testing"

	"github.com/sgysy/babysim/word"
)

func TestParseProgramRoundTripsWithFormatLine(t *testing.T) {
	words := []word.Word{
		word.EncodeInstruction(9, 7, true),
		word.EncodeValue(-4),
		word.EncodeInstruction(7, 0, false),
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(word.FormatLine(w))
		b.WriteByte('\n')
	}

	got, err := ParseProgram(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(got) != len(words) {
		t.Fatalf("got %d words, want %d", len(got), len(words))
	}
	for i := range words {
		if got[i] != words[i] {
			t.Errorf("word %d = %v, want %v", i, got[i], words[i])
		}
	}
}

func TestParseProgramRejectsMalformedLine(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("0101\n"))
	if err == nil {
		t.Fatal("expected error for a line of the wrong length")
	}
}

func TestParseProgramRejectsBadCharacter(t *testing.T) {
	bad := strings.Repeat("0", 31) + "2"
	_, err := ParseProgram(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for a non-binary character")
	}
}
