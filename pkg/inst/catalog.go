package inst

import "fmt"

// fileOperandOps are instructions whose only operand is a file address.
var fileOperandOps = map[OpCode]bool{
	MOVWF: true,
	CLRF:  true,
}

// fileDestOps are instructions with a file address plus a destination bit.
var fileDestOps = map[OpCode]bool{
	SUBWF: true, DECF: true, IORWF: true, ANDWF: true, XORWF: true,
	ADDWF: true, MOVF: true, COMF: true, INCF: true, DECFSZ: true,
	RRF: true, RLF: true, SWAPF: true, INCFSZ: true,
}

// fileBitOps are instructions with a file address plus a bit index.
var fileBitOps = map[OpCode]bool{
	BCF: true, BSF: true, BTFSC: true, BTFSS: true,
}

// literalOps are instructions whose sole operand is a literal, rendered four
// ways (decimal, hex, binary, octal) on the same line.
var literalOps = map[OpCode]bool{
	RETLW: true, CALL: true, GOTO: true,
	MOVLW: true, IORLW: true, ANDLW: true, XORLW: true,
}

// Disassemble renders a decoded Instruction as one formatted line, terminated
// by a newline. It is a pure function of instr alone: the same Instruction
// value always produces the same line, matching the decoder/disassembler
// agreement this package is required to preserve.
func Disassemble(instr Instruction) string {
	mnemonic := instr.Op.String()
	switch {
	case instr.Op == NOP || instr.Op == CLRW:
		return fmt.Sprintf("%-8s\n", mnemonic)
	case fileOperandOps[instr.Op]:
		return fmt.Sprintf("%-8s F%-2d\n", mnemonic, instr.F)
	case fileDestOps[instr.Op]:
		return fmt.Sprintf("%-8s F%-2d D%d\n", mnemonic, instr.F, instr.D)
	case fileBitOps[instr.Op]:
		return fmt.Sprintf("%-8s F%-2d B%d\n", mnemonic, instr.F, instr.B)
	case instr.Op == RETLW:
		// RETLW alone zero-pads its decimal column (%03d); every other
		// literal op left-aligns it, matching original_source/pic1650.hpp.
		return fmt.Sprintf("%-8s %03d x%02X   b%08b o%03o\n", mnemonic, instr.K, instr.K, instr.K, instr.K)
	case instr.Op == GOTO:
		return fmt.Sprintf("%-8s %-3d x%03X b%09b o%03o\n", mnemonic, instr.K, instr.K, instr.K, instr.K)
	case literalOps[instr.Op]:
		// 8-bit literal ops other than RETLW: three spaces separate the
		// 2-digit hex field from the binary field (GOTO's wider x%03X is
		// followed by a single space), matching original_source/pic1650.hpp.
		return fmt.Sprintf("%-8s %-3d x%02X   b%08b o%03o\n", mnemonic, instr.K, instr.K, instr.K, instr.K)
	default:
		return fmt.Sprintf("%-8s\n", mnemonic)
	}
}

// AllOpcodes returns every OpCode value the decoder can produce, in
// declaration order, for callers that enumerate the instruction set.
func AllOpcodes() []OpCode {
	ops := make([]OpCode, 0, opCodeCount)
	for i := OpCode(0); i < opCodeCount; i++ {
		ops = append(ops, i)
	}
	return ops
}
