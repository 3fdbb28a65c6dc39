package asm

import "fmt"

// ErrorKind enumerates the assembler's structured error categories,
// replacing the original implementation's "NNNlllTOKEN" string-encoded
// exceptions (spec §9's error channel redesign).
type ErrorKind int

const (
	ErrLabelRedefined    ErrorKind = 100
	ErrLabelUndefined    ErrorKind = 101
	ErrInvalidValue      ErrorKind = 102
	ErrUnknownMnemonic   ErrorKind = 103
	ErrBadAddressingMode ErrorKind = 104
)

// Error is a tagged assembler error carrying the offending line and
// token, so callers can branch on Kind with errors.As instead of parsing
// a message string.
type Error struct {
	Kind  ErrorKind
	Line  int
	Token string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.description())
}

func (e *Error) description() string {
	switch e.Kind {
	case ErrLabelRedefined:
		return fmt.Sprintf("label %q is defined more than once", e.Token)
	case ErrLabelUndefined:
		return fmt.Sprintf("label %q is not defined", e.Token)
	case ErrInvalidValue:
		return fmt.Sprintf("%q should be a signed 32-bit integer but is not", e.Token)
	case ErrUnknownMnemonic:
		return fmt.Sprintf("instruction %q is not in the instruction set", e.Token)
	case ErrBadAddressingMode:
		return fmt.Sprintf("instruction %q cannot use immediate addressing", e.Token)
	default:
		return "unknown assembly error"
	}
}

// Suggestion returns the remediation text §9's log format prints
// alongside a Description line.
func (e *Error) Suggestion() string {
	switch e.Kind {
	case ErrLabelRedefined:
		return "Check whether the label name is spelled correctly"
	case ErrLabelUndefined:
		return "Check whether the operand name in the instruction is spelled correctly"
	case ErrInvalidValue:
		return "Check whether the value is entered correctly"
	case ErrUnknownMnemonic:
		return "Check whether the instruction is spelled correctly"
	case ErrBadAddressingMode:
		return "Check whether the instruction is spelled correctly"
	default:
		return ""
	}
}

// Summary returns the one-line "Error: ..." heading for the log.
func (e *Error) Summary() string {
	switch e.Kind {
	case ErrLabelRedefined, ErrLabelUndefined:
		return fmt.Sprintf("Label %q definition error", e.Token)
	case ErrInvalidValue:
		return fmt.Sprintf("%q is not a value", e.Token)
	case ErrUnknownMnemonic:
		return fmt.Sprintf("Instruction %q not exist", e.Token)
	case ErrBadAddressingMode:
		return "Wrong addressing way"
	default:
		return "Unexpected error"
	}
}
