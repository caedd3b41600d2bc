// Package disassemble renders one instruction at a time across every
// variant the cpu package knows about (spec.md §6: diagnostic tooling,
// out of the core's own scope but part of SPEC_FULL's ambient stack).
package disassemble

import (
	"fmt"

	"github.com/sixfiveoh/m65xx/cpu"
	"github.com/sixfiveoh/m65xx/memory"
)

// Step disassembles the instruction at pc under variant, returning the
// rendered line and the instruction length in bytes. Like the teacher's
// original Step, this does not interpret control flow: a JMP operand is
// printed as a target address, never followed.
//
// Step always reads 4 bytes starting at pc so the caller's Memory must
// tolerate reads past the end of a short instruction near the top of
// its map, the same convention cpu.Chip.Execute's lookahead fetch relies
// on.
func Step(pc uint16, variant cpu.Variant, mem memory.Memory) (string, int) {
	var buf [4]uint8
	mem.ReadN(buf[:], pc)
	opcode := buf[0]

	mnemonic, mode, length := cpu.OpInfo(variant, opcode)

	// amImp3 (HuC6280 block-move) is 7 bytes; re-read into a wider buffer
	// rather than widening the common-path array.
	if mode == cpu.ModeBlockMove {
		var wide [7]uint8
		mem.ReadN(wide[:], pc)
		return fmt.Sprintf("%s %s", mnemonic, blockMoveOperands(wide[:])), length
	}

	operand := formatOperand(mode, buf[:], pc)
	if operand == "" {
		return mnemonic, length
	}
	return fmt.Sprintf("%s %s", mnemonic, operand), length
}

func blockMoveOperands(buf []uint8) string {
	src := uint16(buf[1]) | uint16(buf[2])<<8
	dst := uint16(buf[3]) | uint16(buf[4])<<8
	length := uint16(buf[5]) | uint16(buf[6])<<8
	return fmt.Sprintf("$%04X,$%04X,$%04X", src, dst, length)
}

func formatOperand(mode cpu.OpMode, buf []uint8, pc uint16) string {
	switch mode {
	case cpu.ModeImplied, cpu.ModeAccumulator:
		return ""
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%02X", buf[1])
	case cpu.ModeZP:
		return fmt.Sprintf("$%02X", buf[1])
	case cpu.ModeZPX:
		return fmt.Sprintf("$%02X,X", buf[1])
	case cpu.ModeZPY:
		return fmt.Sprintf("$%02X,Y", buf[1])
	case cpu.ModeIndirect:
		return fmt.Sprintf("($%02X)", buf[1])
	case cpu.ModeIndirectX:
		return fmt.Sprintf("($%02X,X)", buf[1])
	case cpu.ModeIndirectY:
		return fmt.Sprintf("($%02X),Y", buf[1])
	case cpu.ModeAbsolute:
		return fmt.Sprintf("$%04X", addr16(buf))
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("$%04X,X", addr16(buf))
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", addr16(buf))
	case cpu.ModeAbsoluteIndirect:
		return fmt.Sprintf("($%04X)", addr16(buf))
	case cpu.ModeAbsoluteIndirectX:
		return fmt.Sprintf("($%04X,X)", addr16(buf))
	case cpu.ModeRelative:
		target := pc + 2 + uint16(int8(buf[1]))
		return fmt.Sprintf("$%04X", target)
	case cpu.ModeZPRel:
		// BBRn/BBSn only (RMBn/SMBn disassemble as plain ModeZP); offset
		// is relative to PC+3, the byte after the full 3-byte instruction.
		target := pc + 3 + uint16(int8(buf[2]))
		return fmt.Sprintf("$%02X,$%04X", buf[1], target)
	case cpu.ModeImmZP:
		return fmt.Sprintf("#$%02X,$%02X", buf[1], buf[2])
	case cpu.ModeImmZPX:
		return fmt.Sprintf("#$%02X,$%02X,X", buf[1], buf[2])
	case cpu.ModeImmAbs:
		return fmt.Sprintf("#$%02X,$%04X", buf[1], uint16(buf[2])|uint16(buf[3])<<8)
	case cpu.ModeImmAbsX:
		return fmt.Sprintf("#$%02X,$%04X,X", buf[1], uint16(buf[2])|uint16(buf[3])<<8)
	}
	return ""
}

func addr16(buf []uint8) uint16 {
	return uint16(buf[1]) | uint16(buf[2])<<8
}
