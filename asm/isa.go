package asm

// mnemonics maps each instruction mnemonic to its opcode value (spec §4.5).
// VAR is a directive, not an opcode, and is handled separately.
var mnemonics = map[string]byte{
	"JMP": 0,
	"JRP": 1,
	"LDN": 2,
	"STO": 3,
	"SUB": 4,
	"CMP": 6,
	"STP": 7,
	"LDP": 8,
	"ADD": 9,
	"DIV": 10,
	"MOD": 11,
	"LAN": 12,
	"LOR": 13,
	"LNT": 14,
	"SHL": 15,
	"SHR": 16,
}

// noOperand is the set of mnemonics that take no operand at all.
var noOperand = map[string]bool{
	"CMP": true,
	"STP": true,
	"LNT": true,
	"SHL": true,
	"SHR": true,
}

// immediateAllowed is the set of mnemonics that may address their operand
// with "#" immediate syntax rather than a label.
var immediateAllowed = map[string]bool{
	"JMP": true,
	"JRP": true,
	"LDN": true,
	"SUB": true,
	"LDP": true,
	"ADD": true,
	"DIV": true,
	"MOD": true,
}
