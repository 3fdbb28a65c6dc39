package machine

import "github.com/sgysy/babysim/word"

// Step runs exactly one fetch-decode-execute-advance round (spec §4.5).
// Calling Step once the machine has halted is a no-op: it returns nil
// without touching any register, matching the idempotent halted-state
// behavior the spec requires rather than re-executing STP.
func (s *State) Step() error {
	if s.Halted {
		return nil
	}

	s.PI = s.Memory[mod32(s.CI)]
	opcode, operand, immediate := word.DecodeWord(s.PI)
	s.CurOpcode = opcode
	s.CurOperand = operand
	s.CurImmediate = immediate

	if err := s.execute(opcode, operand, immediate); err != nil {
		s.Halted = true
		return err
	}

	s.CurRound++
	s.PrevCI = s.CI
	s.CI = mod32(s.CI + 1)
	return nil
}

// memIndex masks a raw 13-bit operand down to a valid memory address
// (spec §9's explicit modulo-32 resolution of the memory-operand open
// question).
func memIndex(operand uint32) int {
	return int(operand) % MemorySize
}

func (s *State) execute(opcode byte, operand uint32, immediate bool) error {
	switch opcode {
	case 0: // JMP: CI = S, or CI = operand under immediate addressing
		if immediate {
			s.CI = mod32(int(operand))
		} else {
			s.CI = mod32(int(s.Memory[memIndex(operand)].ToSigned()))
		}
	case 1: // JRP: CI += S
		if immediate {
			s.CI = mod32(s.CI + int(operand))
		} else {
			s.CI = mod32(s.CI + int(s.Memory[memIndex(operand)].ToSigned()))
		}
	case 2: // LDN: A = -S
		if immediate {
			s.Accumulator = -int32(operand)
		} else {
			s.Accumulator = -s.Memory[memIndex(operand)].ToSigned()
		}
	case 3: // STO: S = A
		s.Memory[memIndex(operand)] = word.EncodeValue(s.Accumulator)
	case 4: // SUB (opcode 5 already normalized to 4 by DecodeWord): A -= S
		if immediate {
			s.Accumulator -= int32(operand)
		} else {
			s.Accumulator -= s.Memory[memIndex(operand)].ToSigned()
		}
	case 6: // CMP: if A < 0, skip the next instruction
		if s.Accumulator < 0 {
			s.CI = mod32(s.CI + 1)
		}
	case 7: // STP: halt
		s.Halted = true
	case 8: // LDP: A = S
		if immediate {
			s.Accumulator = int32(operand)
		} else {
			s.Accumulator = s.Memory[memIndex(operand)].ToSigned()
		}
	case 9: // ADD: A += S
		if immediate {
			s.Accumulator += int32(operand)
		} else {
			s.Accumulator += s.Memory[memIndex(operand)].ToSigned()
		}
	case 10: // DIV: A /= S
		divisor := s.operandValue(operand, immediate)
		if divisor == 0 {
			return &ExecError{Kind: ErrDivByZero, Round: s.CurRound, Opcode: opcode}
		}
		s.Accumulator /= divisor
	case 11: // MOD: A %= S
		divisor := s.operandValue(operand, immediate)
		if divisor == 0 {
			return &ExecError{Kind: ErrDivByZero, Round: s.CurRound, Opcode: opcode}
		}
		s.Accumulator %= divisor
	case 12: // LAN: A &= S
		s.Accumulator &= s.Memory[memIndex(operand)].ToSigned()
	case 13: // LOR: A |= S
		s.Accumulator |= s.Memory[memIndex(operand)].ToSigned()
	case 14: // LNT: A = ~A
		s.Accumulator = ^s.Accumulator
	case 15: // SHL: A <<= 1
		s.Accumulator <<= 1
	case 16: // SHR: A >>= 1
		s.Accumulator >>= 1
	default:
		return &ExecError{Kind: ErrUnknownOpcode, Round: s.CurRound, Opcode: opcode}
	}
	return nil
}

// operandValue resolves an operand to its signed value under either
// addressing mode, for opcodes (DIV, MOD) that need the value before
// deciding whether it is a legal divisor.
func (s *State) operandValue(operand uint32, immediate bool) int32 {
	if immediate {
		return int32(operand)
	}
	return s.Memory[memIndex(operand)].ToSigned()
}
