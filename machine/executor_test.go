package machine

import (
	"strings"
	"testing"

	"github.com/sgysy/babysim/asm"
	"github.com/sgysy/babysim/word"
)

func run(t *testing.T, source string) *State {
	t.Helper()
	res, err := asm.Assemble(strings.NewReader(source), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	s := New()
	if err := s.Load(res.Words); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 1000 && !s.Halted; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !s.Halted {
		t.Fatalf("program did not halt within 1000 rounds")
	}
	return s
}

func TestScenarioImmediateAdd(t *testing.T) {
	s := run(t, "LDP #5\nADD #7\nSTP\n")
	if s.Accumulator != 12 {
		t.Errorf("accumulator = %d, want 12", s.Accumulator)
	}
}

func TestScenarioMemoryLoadAndNegate(t *testing.T) {
	s := run(t, "LDN X\nSTP\nX: VAR 4\n")
	if s.Accumulator != -4 {
		t.Errorf("accumulator = %d, want -4", s.Accumulator)
	}
}

func TestScenarioConditionalSkip(t *testing.T) {
	s := run(t, "LDN ONE\nCMP\nJMP END\nLDP #42\nEND: STP\nONE: VAR 1\n")
	if s.Accumulator != 42 {
		t.Errorf("accumulator = %d, want 42", s.Accumulator)
	}
}

func TestScenarioShiftChain(t *testing.T) {
	s := run(t, "LDP #1\nSHL\nSHL\nSHL\nSTP\n")
	if s.Accumulator != 8 {
		t.Errorf("accumulator = %d, want 8", s.Accumulator)
	}
}

func TestScenarioModulo(t *testing.T) {
	s := run(t, "LDP #17\nMOD #5\nSTP\n")
	if s.Accumulator != 2 {
		t.Errorf("accumulator = %d, want 2", s.Accumulator)
	}
}

func TestScenarioLabeledStoreLoadRoundTrip(t *testing.T) {
	s := run(t, "LDP #9\nSTO SLOT\nLDP #0\nADD SLOT\nSTP\nSLOT: VAR 0\n")
	if s.Accumulator != 9 {
		t.Errorf("accumulator = %d, want 9", s.Accumulator)
	}
}

func TestStpIsIdempotent(t *testing.T) {
	s := run(t, "LDP #9\nSTP\n")
	want := s.Accumulator
	for i := 0; i < 5; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step after halt returned error: %v", err)
		}
	}
	if s.Accumulator != want || !s.Halted {
		t.Errorf("state changed after halt: accumulator=%d halted=%v", s.Accumulator, s.Halted)
	}
}

func TestLntIsInvolution(t *testing.T) {
	s := New()
	s.Accumulator = 0x12345678
	orig := s.Accumulator
	s.execute(14, 0, false)
	s.execute(14, 0, false)
	if s.Accumulator != orig {
		t.Errorf("LNT twice = %d, want %d", s.Accumulator, orig)
	}
}

func TestShlShrRoundTripsWhenTopBitZero(t *testing.T) {
	s := New()
	s.Accumulator = 0x01234567
	orig := s.Accumulator
	s.execute(15, 0, false) // SHL
	s.execute(16, 0, false) // SHR
	if s.Accumulator != orig {
		t.Errorf("SHL then SHR = %d, want %d", s.Accumulator, orig)
	}
}

func TestCiAdvancesByOneForOrdinaryInstructions(t *testing.T) {
	s := New()
	if err := s.Load([]word.Word{
		word.EncodeInstruction(9, 0, true), // ADD #0
		word.EncodeInstruction(9, 0, true),
		word.EncodeInstruction(7, 0, false), // STP
	}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.CI != 1 {
		t.Errorf("CI = %d, want 1", s.CI)
	}
}

func TestDivisionByZeroHalts(t *testing.T) {
	s := New()
	if err := s.Load([]word.Word{
		word.EncodeInstruction(10, 0, true), // DIV #0
	}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	err := s.Step()
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
	if !s.Halted {
		t.Error("machine should be halted after division by zero")
	}
}

func TestUnknownOpcodeHalts(t *testing.T) {
	s := New()
	// opcode 17 is outside the 0-16 range the ISA defines.
	var w word.Word = 17 << word.OpcodeShift
	if err := s.Load([]word.Word{w}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Step(); err == nil {
		t.Fatal("expected unknown-opcode error")
	}
	if !s.Halted {
		t.Error("machine should be halted after unknown opcode")
	}
}

func TestMemoryOperandMasked(t *testing.T) {
	s := New()
	// operand 35 should mask to memory index 3 (35 % 32 == 3).
	if err := s.Load([]word.Word{word.EncodeInstruction(8, 35, false)}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Load clears memory, so the target cell is written afterwards.
	s.Memory[3] = word.EncodeValue(99)
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.Accumulator != 99 {
		t.Errorf("accumulator = %d, want 99 (operand 35 masked to index 3)", s.Accumulator)
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	s := New()
	big := make([]word.Word, MemorySize+1)
	if err := s.Load(big); err == nil {
		t.Error("expected error loading an oversized program")
	}
}
