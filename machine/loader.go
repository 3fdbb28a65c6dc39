package machine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sgysy/babysim/word"
)

// ParseProgram reads the simulator's binary input format: one 32-character
// '0'/'1' line per word, LF-terminated, a trailing CR tolerated and
// stripped. A line of any other length is a fatal, whole-file error raised
// before any word is returned, matching spec §7's "malformed input file
// halts loading before any cycle executes."
func ParseProgram(r io.Reader) ([]word.Word, error) {
	var words []word.Word
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		w, err := word.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("machine: line %d: %w", lineNo, err)
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
