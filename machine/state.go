// Package machine implements the Manchester-Baby-style machine state and
// its fetch-decode-execute-advance cycle.
package machine

import (
	"fmt"

	"github.com/sgysy/babysim/word"
)

// MemorySize is the fixed number of words the machine addresses. It is a
// named constant, not a config field, because the instruction format's
// 13-bit operand/address masking and the control-instruction wraparound
// are both defined in terms of this exact size (spec §3, §9).
const MemorySize = 32

// State holds everything the machine needs between rounds: its memory,
// control and present-instruction registers, accumulator, and the
// decoded fields of the instruction currently executing.
type State struct {
	Memory [MemorySize]word.Word

	CI     int // control instruction: address of the next word to fetch
	PrevCI int // CI at the start of the most recently executed round
	PI     word.Word

	Accumulator int32
	Halted      bool

	CurOpcode    byte
	CurOperand   uint32
	CurImmediate bool
	CurRound     uint64
}

// New returns a zeroed machine, ready to be loaded and run.
func New() *State {
	return &State{}
}

// Reset clears memory and every register back to their zero values,
// including Halted.
func (s *State) Reset() {
	*s = State{}
}

// Load copies program into memory starting at address 0. A program
// longer than MemorySize does not fit a fixed 32-word store and is
// rejected outright rather than silently truncated.
func (s *State) Load(program []word.Word) error {
	if len(program) > MemorySize {
		return fmt.Errorf("machine: program has %d words, exceeds %d-word memory", len(program), MemorySize)
	}
	for i := range s.Memory {
		s.Memory[i] = 0
	}
	copy(s.Memory[:], program)
	return nil
}

// mod32 returns n modulo MemorySize in the mathematical (always
// non-negative) sense, unlike Go's truncating %. This is the "ci
// wraparound tied to memory size" redesign spec §9 calls for: a control
// instruction register that can never fall outside [0, MemorySize).
func mod32(n int) int {
	m := n % MemorySize
	if m < 0 {
		m += MemorySize
	}
	return m
}
