// Package asm implements the two-pass assembler: a label scan followed by
// per-line tokenization and encoding into machine words.
package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sgysy/babysim/diag"
	"github.com/sgysy/babysim/symtab"
	"github.com/sgysy/babysim/word"
)

// Result is the product of a successful assembly.
type Result struct {
	Words   []word.Word
	Symbols *symtab.Table
}

// Assemble reads source, a sequence of "[label:] MNEMONIC [operand]"
// lines (blank lines and lines whose first non-whitespace character is
// ';' are ignored), and
// produces the encoded program. log, if non-nil, receives the structured
// phase/error trace described in spec §6; it is entirely optional to the
// assembly result.
//
// The first error aborts assembly; the original implementation this is
// grounded on (original_source/assembler.cpp) does the same, discarding
// any words already encoded rather than returning a partial program.
func Assemble(source io.Reader, log *diag.Logger) (*Result, error) {
	if log != nil {
		log.Event("Compilation Start: assemble.txt")
	}

	lines, err := readLines(source)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Phase("Preprocessing")
		log.Line("Scan labels and except empty lines")
	}

	symbols := symtab.New()
	for addr, line := range lines {
		label, _, found := splitLabel(line)
		if !found {
			continue
		}
		if symbols.Defined(label) {
			aerr := &Error{Kind: ErrLabelRedefined, Line: addr, Token: label}
			logError(log, aerr)
			return nil, aerr
		}
		symbols.Add(label, addr)
		if log != nil {
			log.Line("Add label '%s' to symbol table", label)
		}
	}

	if log != nil {
		log.Phase("Parsing")
		log.Line("Construct SymbolTable and parsing instructions")
	}

	words := make([]word.Word, 0, len(lines))
	for addr, line := range lines {
		if log != nil {
			log.Line("Assembling line %d: %s", addr, line)
		}
		_, rest, _ := splitLabel(line)
		w, aerr := assembleLine(rest, addr, symbols)
		if aerr != nil {
			logError(log, aerr)
			logSkip(log)
			return nil, aerr
		}
		words = append(words, w)
		if log != nil {
			log.Line("Complete assembling code: %s", word.FormatLine(w))
		}
	}

	if log != nil {
		log.Phase("Code generating")
		log.Line("Code generating complete")
	}

	return &Result{Words: words, Symbols: symbols}, nil
}

func logError(log *diag.Logger, err *Error) {
	if log == nil {
		return
	}
	log.ErrorBlock(err.Summary(), "assemble.txt", err.Line, err.description(), err.Suggestion())
}

func logSkip(log *diag.Logger) {
	if log == nil {
		return
	}
	log.Phase("Code generating")
	log.Line("Skip due to error")
}

// readLines retains every non-blank, non-comment line, in order. A
// retained line's index doubles as both its memory address and the line
// number reported in errors, matching the original assembler.
func readLines(source io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(source)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// splitLabel splits a line of the form "label: REST" into its label and
// remainder. found is false when the line has no colon, in which case
// rest is the whole line.
func splitLabel(line string) (label, rest string, found bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, false
	}
	return line[:idx], strings.TrimSpace(line[idx+1:]), true
}

// assembleLine tokenizes and encodes a single instruction line (with any
// label prefix already stripped).
func assembleLine(rest string, addr int, symbols *symtab.Table) (word.Word, *Error) {
	fields := strings.Fields(rest)
	var mnemonic, operand string
	if len(fields) > 0 {
		mnemonic = fields[0]
	}
	if len(fields) > 1 {
		operand = fields[1]
	}

	if mnemonic == "VAR" {
		v, err := strconv.ParseInt(operand, 10, 32)
		if err != nil {
			return 0, &Error{Kind: ErrInvalidValue, Line: addr, Token: operand}
		}
		return word.EncodeValue(int32(v)), nil
	}

	opcode, ok := mnemonics[mnemonic]
	if !ok {
		return 0, &Error{Kind: ErrUnknownMnemonic, Line: addr, Token: mnemonic}
	}

	if noOperand[mnemonic] {
		return word.EncodeInstruction(opcode, 0, false), nil
	}

	if strings.HasPrefix(operand, "#") {
		if !immediateAllowed[mnemonic] {
			return 0, &Error{Kind: ErrBadAddressingMode, Line: addr, Token: mnemonic}
		}
		literal := operand[1:]
		v, err := strconv.ParseUint(literal, 10, 32)
		if err != nil {
			return 0, &Error{Kind: ErrInvalidValue, Line: addr, Token: operand}
		}
		return word.EncodeInstruction(opcode, uint32(v), true), nil
	}

	target, ok := symbols.Lookup(operand)
	if !ok {
		return 0, &Error{Kind: ErrLabelUndefined, Line: addr, Token: operand}
	}
	return word.EncodeInstruction(opcode, uint32(target), false), nil
}
