package cpu

// Dispatch table construction and the Execute loop (spec.md §4.5, §6).
// Grounded on the teacher's 256-case processOpcode switch in
// _examples/jmchacon-6502/cpu/cpu.go, restructured from per-tick state
// machine into the single-call-per-instruction model of
// original_source/cpu65.c's cpu65_exec, per SPEC_FULL.md's Execute
// design note. The opcode placements and base cycle counts for the
// official 6502 instruction set are the long-standing community-
// documented map; undocumented/CMOS/Rockwell reclaimed-opcode slots
// follow the well-known WDC/Rockwell assignments where spec.md cares
// about the instruction existing; the other reclaimed slots become NOPs
// that keep the addressing mode and cycle count of the NMOS entry they
// replace (see newCMOSTable).

type opEntry struct {
	mnemonic string
	mode     addrMode
	cycles   int
	// run executes the instruction, advances c.PC, and returns the
	// number of cycles to add beyond the table's base cycles.
	run func(c *Chip, buf []uint8, pc uint16) int
}

func unimplemented(mnemonic string) opEntry {
	return opEntry{mnemonic: mnemonic, mode: amImp1, cycles: 2, run: func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = pc + 1
		return 0
	}}
}

// ro builds a read-only ALU-style instruction: resolve, apply fn to the
// value, advance PC. pcp gates whether a page-crossing index adds a cycle.
func ro(mnemonic string, mode addrMode, cycles int, pcp bool, fn func(c *Chip, val uint8)) opEntry {
	return opEntry{mnemonic, mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		op, crossed := c.resolve(mode, buf)
		fn(c, op.val)
		c.PC = pc + uint16(mode.length())
		if pcp && crossed {
			return 1
		}
		return 0
	}}
}

// rw builds a read-modify-write instruction: resolve, apply fn, write back.
func rw(mnemonic string, mode addrMode, cycles int, fn func(c *Chip, val uint8) uint8) opEntry {
	return opEntry{mnemonic, mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		op, _ := c.resolve(mode, buf)
		out := fn(c, op.val)
		c.writeback(mode, op, out)
		c.PC = pc + uint16(mode.length())
		return 0
	}}
}

// st builds a store instruction: compute the address (no read), write
// the register/value fn returns.
func st(mnemonic string, mode addrMode, cycles int, fn func(c *Chip) uint8) opEntry {
	return opEntry{mnemonic, mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(mode, buf)
		c.write8(addr, fn(c))
		c.PC = pc + uint16(mode.length())
		return 0
	}}
}

// impl builds a no-operand implied instruction.
func impl(mnemonic string, cycles int, fn func(c *Chip)) opEntry {
	return opEntry{mnemonic, amImp1, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		fn(c)
		c.PC = pc + 1
		return 0
	}}
}

// implErr is impl for instructions that can fault (KIL/STP).
func implErr(mnemonic string, cycles int, fn func(c *Chip) error) opEntry {
	return opEntry{mnemonic, amImp1, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = pc + 1
		c.pendingErr = fn(c)
		return 0
	}}
}

func branchOp(mnemonic string, cycles int, penalty bool, cond func(c *Chip) bool) opEntry {
	return opEntry{mnemonic, amRel, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		next := pc + 2
		p := c.info.branchPenalty
		if !penalty {
			p = 0
		}
		newPC, extra := c.branch(next, buf[1], cond(c), p)
		c.PC = newPC
		return extra
	}}
}

func bitOp(mnemonic string, mode addrMode, cycles int, immediate bool) opEntry {
	return opEntry{mnemonic, mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		op, _ := c.resolve(mode, buf)
		c.bit(op.val, immediate)
		c.PC = pc + uint16(mode.length())
		return 0
	}}
}

func rmbOp(n uint8) opEntry {
	return opEntry{"RMB", amZP, 5, func(c *Chip, buf []uint8, pc uint16) int {
		c.rmb(n, uint16(buf[1]))
		c.PC = pc + 2
		return 0
	}}
}

func smbOp(n uint8) opEntry {
	return opEntry{"SMB", amZP, 5, func(c *Chip, buf []uint8, pc uint16) int {
		c.smb(n, uint16(buf[1]))
		c.PC = pc + 2
		return 0
	}}
}

func bbrOp(n uint8) opEntry {
	return opEntry{"BBR", amZPRel, 5, func(c *Chip, buf []uint8, pc uint16) int {
		newPC, extra := c.bbr(n, buf, pc+3)
		c.PC = newPC
		return extra
	}}
}

func bbsOp(n uint8) opEntry {
	return opEntry{"BBS", amZPRel, 5, func(c *Chip, buf []uint8, pc uint16) int {
		newPC, extra := c.bbs(n, buf, pc+3)
		c.PC = newPC
		return extra
	}}
}

func jmpOp(mode addrMode, cycles int) opEntry {
	return opEntry{"JMP", mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = c.absoluteIndirectTarget(mode, buf)
		return 0
	}}
}

func jmpAbsOp() opEntry {
	return opEntry{"JMP", amAbs, 3, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = uint16(buf[1]) | uint16(buf[2])<<8
		return 0
	}}
}

func jsrOp() opEntry {
	return opEntry{"JSR", amAbs, 6, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = c.jsr(buf, pc)
		return 0
	}}
}

func rtsOp() opEntry {
	return opEntry{"RTS", amImp1, 6, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = c.rts()
		return 0
	}}
}

func rtiOp() opEntry {
	return opEntry{"RTI", amImp1, 6, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = c.rti()
		return 0
	}}
}

func brkOp() opEntry {
	return opEntry{"BRK", amImp1, 7, func(c *Chip, buf []uint8, pc uint16) int {
		c.brk(pc)
		return 0
	}}
}

func killOp() opEntry {
	return opEntry{"KIL", amImp1, 2, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = pc + 1
		c.pendingErr = c.kil(buf[0])
		return 0
	}}
}

func stpOp() opEntry {
	return opEntry{"STP", amImp1, 3, func(c *Chip, buf []uint8, pc uint16) int {
		c.PC = pc + 1
		c.pendingErr = c.stp()
		return 0
	}}
}

func waiOp() opEntry {
	return opEntry{"WAI", amImp1, 3, func(c *Chip, buf []uint8, pc uint16) int {
		c.wai()
		c.PC = pc + 1
		return 0
	}}
}

func blockMoveOp(mnemonic string, fn func(c *Chip, buf []uint8)) opEntry {
	return opEntry{mnemonic, amImp3, 17, func(c *Chip, buf []uint8, pc uint16) int {
		fn(c, buf)
		c.PC = pc + 7
		return 0
	}}
}

func tstOp(mode addrMode, cycles int) opEntry {
	return opEntry{"TST", mode, cycles, func(c *Chip, buf []uint8, pc uint16) int {
		op, _ := c.resolve(mode, buf)
		c.tst(op, buf[1])
		c.PC = pc + uint16(mode.length())
		return 0
	}}
}

// newNMOSTable builds the base NMOS 6502 opcode table, official and
// undocumented opcodes alike.
func newNMOSTable() [256]opEntry {
	var t [256]opEntry
	for i := range t {
		t[i] = unimplemented("NOP")
	}

	nop := func(mode addrMode, cycles int, pcp bool) opEntry {
		return ro("NOP", mode, cycles, pcp, func(c *Chip, val uint8) {})
	}

	t[0x00] = brkOp()
	t[0x01] = ro("ORA", amIZX, 6, false, (*Chip).ora)
	t[0x02] = killOp()
	t[0x03] = rw("SLO", amIZX, 8, (*Chip).slo)
	t[0x04] = nop(amZP, 3, false)
	t[0x05] = ro("ORA", amZP, 3, false, (*Chip).ora)
	t[0x06] = rw("ASL", amZP, 5, (*Chip).asl)
	t[0x07] = rw("SLO", amZP, 5, (*Chip).slo)
	t[0x08] = impl("PHP", 3, (*Chip).php)
	t[0x09] = ro("ORA", amImm, 2, false, (*Chip).ora)
	t[0x0A] = rw("ASL", amAcc, 2, (*Chip).asl)
	t[0x0B] = ro("ANC", amImm, 2, false, (*Chip).anc)
	t[0x0C] = nop(amAbs, 4, false)
	t[0x0D] = ro("ORA", amAbs, 4, false, (*Chip).ora)
	t[0x0E] = rw("ASL", amAbs, 6, (*Chip).asl)
	t[0x0F] = rw("SLO", amAbs, 6, (*Chip).slo)

	t[0x10] = branchOp("BPL", 2, true, func(c *Chip) bool { return c.N == 0 })
	t[0x11] = ro("ORA", amIZY, 5, true, (*Chip).ora)
	t[0x12] = killOp()
	t[0x13] = rw("SLO", amIZY, 8, (*Chip).slo)
	t[0x14] = nop(amZPX, 4, false)
	t[0x15] = ro("ORA", amZPX, 4, false, (*Chip).ora)
	t[0x16] = rw("ASL", amZPX, 6, (*Chip).asl)
	t[0x17] = rw("SLO", amZPX, 6, (*Chip).slo)
	t[0x18] = impl("CLC", 2, func(c *Chip) { c.C = 0 })
	t[0x19] = ro("ORA", amAbsY, 4, true, (*Chip).ora)
	t[0x1A] = nop(amImp1, 2, false)
	t[0x1B] = rw("SLO", amAbsY, 7, (*Chip).slo)
	t[0x1C] = nop(amAbsX, 4, true)
	t[0x1D] = ro("ORA", amAbsX, 4, true, (*Chip).ora)
	t[0x1E] = rw("ASL", amAbsX, 7, (*Chip).asl)
	t[0x1F] = rw("SLO", amAbsX, 7, (*Chip).slo)

	t[0x20] = jsrOp()
	t[0x21] = ro("AND", amIZX, 6, false, (*Chip).and)
	t[0x22] = killOp()
	t[0x23] = rw("RLA", amIZX, 8, (*Chip).rla)
	t[0x24] = bitOp("BIT", amZP, 3, false)
	t[0x25] = ro("AND", amZP, 3, false, (*Chip).and)
	t[0x26] = rw("ROL", amZP, 5, (*Chip).rol)
	t[0x27] = rw("RLA", amZP, 5, (*Chip).rla)
	t[0x28] = impl("PLP", 4, (*Chip).plp)
	t[0x29] = ro("AND", amImm, 2, false, (*Chip).and)
	t[0x2A] = rw("ROL", amAcc, 2, (*Chip).rol)
	t[0x2B] = ro("ANC", amImm, 2, false, (*Chip).anc)
	t[0x2C] = bitOp("BIT", amAbs, 4, false)
	t[0x2D] = ro("AND", amAbs, 4, false, (*Chip).and)
	t[0x2E] = rw("ROL", amAbs, 6, (*Chip).rol)
	t[0x2F] = rw("RLA", amAbs, 6, (*Chip).rla)

	t[0x30] = branchOp("BMI", 2, true, func(c *Chip) bool { return c.N == 1 })
	t[0x31] = ro("AND", amIZY, 5, true, (*Chip).and)
	t[0x32] = killOp()
	t[0x33] = rw("RLA", amIZY, 8, (*Chip).rla)
	t[0x34] = nop(amZPX, 4, false)
	t[0x35] = ro("AND", amZPX, 4, false, (*Chip).and)
	t[0x36] = rw("ROL", amZPX, 6, (*Chip).rol)
	t[0x37] = rw("RLA", amZPX, 6, (*Chip).rla)
	t[0x38] = impl("SEC", 2, func(c *Chip) { c.C = 1 })
	t[0x39] = ro("AND", amAbsY, 4, true, (*Chip).and)
	t[0x3A] = nop(amImp1, 2, false)
	t[0x3B] = rw("RLA", amAbsY, 7, (*Chip).rla)
	t[0x3C] = nop(amAbsX, 4, true)
	t[0x3D] = ro("AND", amAbsX, 4, true, (*Chip).and)
	t[0x3E] = rw("ROL", amAbsX, 7, (*Chip).rol)
	t[0x3F] = rw("RLA", amAbsX, 7, (*Chip).rla)

	t[0x40] = rtiOp()
	t[0x41] = ro("EOR", amIZX, 6, false, (*Chip).eor)
	t[0x42] = killOp()
	t[0x43] = rw("SRE", amIZX, 8, (*Chip).sre)
	t[0x44] = nop(amZP, 3, false)
	t[0x45] = ro("EOR", amZP, 3, false, (*Chip).eor)
	t[0x46] = rw("LSR", amZP, 5, (*Chip).lsr)
	t[0x47] = rw("SRE", amZP, 5, (*Chip).sre)
	t[0x48] = impl("PHA", 3, (*Chip).pha)
	t[0x49] = ro("EOR", amImm, 2, false, (*Chip).eor)
	t[0x4A] = rw("LSR", amAcc, 2, (*Chip).lsr)
	t[0x4B] = ro("ALR", amImm, 2, false, (*Chip).alr)
	t[0x4C] = jmpAbsOp()
	t[0x4D] = ro("EOR", amAbs, 4, false, (*Chip).eor)
	t[0x4E] = rw("LSR", amAbs, 6, (*Chip).lsr)
	t[0x4F] = rw("SRE", amAbs, 6, (*Chip).sre)

	t[0x50] = branchOp("BVC", 2, true, func(c *Chip) bool { return c.V == 0 })
	t[0x51] = ro("EOR", amIZY, 5, true, (*Chip).eor)
	t[0x52] = killOp()
	t[0x53] = rw("SRE", amIZY, 8, (*Chip).sre)
	t[0x54] = nop(amZPX, 4, false)
	t[0x55] = ro("EOR", amZPX, 4, false, (*Chip).eor)
	t[0x56] = rw("LSR", amZPX, 6, (*Chip).lsr)
	t[0x57] = rw("SRE", amZPX, 6, (*Chip).sre)
	t[0x58] = impl("CLI", 2, func(c *Chip) { c.I = 0 })
	t[0x59] = ro("EOR", amAbsY, 4, true, (*Chip).eor)
	t[0x5A] = nop(amImp1, 2, false)
	t[0x5B] = rw("SRE", amAbsY, 7, (*Chip).sre)
	t[0x5C] = nop(amAbsX, 4, true)
	t[0x5D] = ro("EOR", amAbsX, 4, true, (*Chip).eor)
	t[0x5E] = rw("LSR", amAbsX, 7, (*Chip).lsr)
	t[0x5F] = rw("SRE", amAbsX, 7, (*Chip).sre)

	t[0x60] = rtsOp()
	t[0x61] = ro("ADC", amIZX, 6, false, (*Chip).adc)
	t[0x62] = killOp()
	t[0x63] = rw("RRA", amIZX, 8, (*Chip).rra)
	t[0x64] = nop(amZP, 3, false)
	t[0x65] = ro("ADC", amZP, 3, false, (*Chip).adc)
	t[0x66] = rw("ROR", amZP, 5, (*Chip).ror)
	t[0x67] = rw("RRA", amZP, 5, (*Chip).rra)
	t[0x68] = impl("PLA", 4, (*Chip).pla)
	t[0x69] = ro("ADC", amImm, 2, false, (*Chip).adc)
	t[0x6A] = rw("ROR", amAcc, 2, (*Chip).ror)
	t[0x6B] = ro("ARR", amImm, 2, false, (*Chip).arr)
	t[0x6C] = jmpOp(amAbsInd, 5)
	t[0x6D] = ro("ADC", amAbs, 4, false, (*Chip).adc)
	t[0x6E] = rw("ROR", amAbs, 6, (*Chip).ror)
	t[0x6F] = rw("RRA", amAbs, 6, (*Chip).rra)

	t[0x70] = branchOp("BVS", 2, true, func(c *Chip) bool { return c.V == 1 })
	t[0x71] = ro("ADC", amIZY, 5, true, (*Chip).adc)
	t[0x72] = killOp()
	t[0x73] = rw("RRA", amIZY, 8, (*Chip).rra)
	t[0x74] = nop(amZPX, 4, false)
	t[0x75] = ro("ADC", amZPX, 4, false, (*Chip).adc)
	t[0x76] = rw("ROR", amZPX, 6, (*Chip).ror)
	t[0x77] = rw("RRA", amZPX, 6, (*Chip).rra)
	t[0x78] = impl("SEI", 2, func(c *Chip) { c.I = 1 })
	t[0x79] = ro("ADC", amAbsY, 4, true, (*Chip).adc)
	t[0x7A] = nop(amImp1, 2, false)
	t[0x7B] = rw("RRA", amAbsY, 7, (*Chip).rra)
	t[0x7C] = nop(amAbsX, 4, true)
	t[0x7D] = ro("ADC", amAbsX, 4, true, (*Chip).adc)
	t[0x7E] = rw("ROR", amAbsX, 7, (*Chip).ror)
	t[0x7F] = rw("RRA", amAbsX, 7, (*Chip).rra)

	t[0x80] = nop(amImm, 2, false)
	t[0x81] = st("STA", amIZX, 6, func(c *Chip) uint8 { return c.A })
	t[0x82] = nop(amImm, 2, false)
	t[0x83] = st("SAX", amIZX, 6, (*Chip).nmosSAX)
	t[0x84] = st("STY", amZP, 3, func(c *Chip) uint8 { return c.Y })
	t[0x85] = st("STA", amZP, 3, func(c *Chip) uint8 { return c.A })
	t[0x86] = st("STX", amZP, 3, func(c *Chip) uint8 { return c.X })
	t[0x87] = st("SAX", amZP, 3, (*Chip).nmosSAX)
	t[0x88] = impl("DEY", 2, (*Chip).dey)
	t[0x89] = nop(amImm, 2, false)
	t[0x8A] = impl("TXA", 2, (*Chip).txa)
	t[0x8B] = ro("XAA", amImm, 2, false, (*Chip).xaa)
	t[0x8C] = st("STY", amAbs, 4, func(c *Chip) uint8 { return c.Y })
	t[0x8D] = st("STA", amAbs, 4, func(c *Chip) uint8 { return c.A })
	t[0x8E] = st("STX", amAbs, 4, func(c *Chip) uint8 { return c.X })
	t[0x8F] = st("SAX", amAbs, 4, (*Chip).nmosSAX)

	t[0x90] = branchOp("BCC", 2, true, func(c *Chip) bool { return c.C == 0 })
	t[0x91] = st("STA", amIZY, 6, func(c *Chip) uint8 { return c.A })
	t[0x92] = killOp()
	t[0x93] = opEntry{"AHX", amIZY, 6, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(amIZY, buf)
		c.write8(addr, c.ahx(addr))
		c.PC = pc + 2
		return 0
	}}
	t[0x94] = st("STY", amZPX, 4, func(c *Chip) uint8 { return c.Y })
	t[0x95] = st("STA", amZPX, 4, func(c *Chip) uint8 { return c.A })
	t[0x96] = st("STX", amZPY, 4, func(c *Chip) uint8 { return c.X })
	t[0x97] = st("SAX", amZPY, 4, (*Chip).nmosSAX)
	t[0x98] = impl("TYA", 2, (*Chip).tya)
	t[0x99] = st("STA", amAbsY, 5, func(c *Chip) uint8 { return c.A })
	t[0x9A] = impl("TXS", 2, (*Chip).txs)
	t[0x9B] = opEntry{"TAS", amAbsY, 5, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(amAbsY, buf)
		c.write8(addr, c.tas(addr))
		c.PC = pc + 3
		return 0
	}}
	t[0x9C] = opEntry{"SHY", amAbsX, 5, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(amAbsX, buf)
		c.write8(addr, c.shy(addr))
		c.PC = pc + 3
		return 0
	}}
	t[0x9D] = st("STA", amAbsX, 5, func(c *Chip) uint8 { return c.A })
	t[0x9E] = opEntry{"SHX", amAbsY, 5, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(amAbsY, buf)
		c.write8(addr, c.shx(addr))
		c.PC = pc + 3
		return 0
	}}
	t[0x9F] = opEntry{"AHX", amAbsY, 5, func(c *Chip, buf []uint8, pc uint16) int {
		addr := c.resolveAddr(amAbsY, buf)
		c.write8(addr, c.ahx(addr))
		c.PC = pc + 3
		return 0
	}}

	ld := func(mnemonic string, mode addrMode, cycles int, pcp bool, dst func(c *Chip, v uint8)) opEntry {
		return ro(mnemonic, mode, cycles, pcp, func(c *Chip, val uint8) { dst(c, val); c.setZN(val) })
	}
	t[0xA0] = ld("LDY", amImm, 2, false, func(c *Chip, v uint8) { c.Y = v })
	t[0xA1] = ld("LDA", amIZX, 6, false, func(c *Chip, v uint8) { c.A = v })
	t[0xA2] = ld("LDX", amImm, 2, false, func(c *Chip, v uint8) { c.X = v })
	t[0xA3] = ro("LAX", amIZX, 6, false, (*Chip).lax)
	t[0xA4] = ld("LDY", amZP, 3, false, func(c *Chip, v uint8) { c.Y = v })
	t[0xA5] = ld("LDA", amZP, 3, false, func(c *Chip, v uint8) { c.A = v })
	t[0xA6] = ld("LDX", amZP, 3, false, func(c *Chip, v uint8) { c.X = v })
	t[0xA7] = ro("LAX", amZP, 3, false, (*Chip).lax)
	t[0xA8] = impl("TAY", 2, (*Chip).tay)
	t[0xA9] = ld("LDA", amImm, 2, false, func(c *Chip, v uint8) { c.A = v })
	t[0xAA] = impl("TAX", 2, (*Chip).tax)
	t[0xAB] = ro("LXA", amImm, 2, false, (*Chip).lxa)
	t[0xAC] = ld("LDY", amAbs, 4, false, func(c *Chip, v uint8) { c.Y = v })
	t[0xAD] = ld("LDA", amAbs, 4, false, func(c *Chip, v uint8) { c.A = v })
	t[0xAE] = ld("LDX", amAbs, 4, false, func(c *Chip, v uint8) { c.X = v })
	t[0xAF] = ro("LAX", amAbs, 4, false, (*Chip).lax)

	t[0xB0] = branchOp("BCS", 2, true, func(c *Chip) bool { return c.C == 1 })
	t[0xB1] = ld("LDA", amIZY, 5, true, func(c *Chip, v uint8) { c.A = v })
	t[0xB2] = killOp()
	t[0xB3] = ro("LAX", amIZY, 5, true, (*Chip).lax)
	t[0xB4] = ld("LDY", amZPX, 4, false, func(c *Chip, v uint8) { c.Y = v })
	t[0xB5] = ld("LDA", amZPX, 4, false, func(c *Chip, v uint8) { c.A = v })
	t[0xB6] = ld("LDX", amZPY, 4, false, func(c *Chip, v uint8) { c.X = v })
	t[0xB7] = ro("LAX", amZPY, 4, false, (*Chip).lax)
	t[0xB8] = impl("CLV", 2, func(c *Chip) { c.V = 0 })
	t[0xB9] = ld("LDA", amAbsY, 4, true, func(c *Chip, v uint8) { c.A = v })
	t[0xBA] = impl("TSX", 2, (*Chip).tsx)
	t[0xBB] = ro("LAS", amAbsY, 4, true, (*Chip).las)
	t[0xBC] = ld("LDY", amAbsX, 4, true, func(c *Chip, v uint8) { c.Y = v })
	t[0xBD] = ld("LDA", amAbsX, 4, true, func(c *Chip, v uint8) { c.A = v })
	t[0xBE] = ld("LDX", amAbsY, 4, true, func(c *Chip, v uint8) { c.X = v })
	t[0xBF] = ro("LAX", amAbsY, 4, true, (*Chip).lax)

	cmp := func(mnemonic string, mode addrMode, cycles int, pcp bool, reg func(c *Chip) uint8) opEntry {
		return ro(mnemonic, mode, cycles, pcp, func(c *Chip, val uint8) { c.compare(reg(c), val) })
	}
	t[0xC0] = cmp("CPY", amImm, 2, false, func(c *Chip) uint8 { return c.Y })
	t[0xC1] = cmp("CMP", amIZX, 6, false, func(c *Chip) uint8 { return c.A })
	t[0xC2] = nop(amImm, 2, false)
	t[0xC3] = rw("DCP", amIZX, 8, (*Chip).dcp)
	t[0xC4] = cmp("CPY", amZP, 3, false, func(c *Chip) uint8 { return c.Y })
	t[0xC5] = cmp("CMP", amZP, 3, false, func(c *Chip) uint8 { return c.A })
	t[0xC6] = rw("DEC", amZP, 5, (*Chip).dec)
	t[0xC7] = rw("DCP", amZP, 5, (*Chip).dcp)
	t[0xC8] = impl("INY", 2, (*Chip).iny)
	t[0xC9] = cmp("CMP", amImm, 2, false, func(c *Chip) uint8 { return c.A })
	t[0xCA] = impl("DEX", 2, (*Chip).dex)
	t[0xCB] = ro("SBX", amImm, 2, false, (*Chip).sbx)
	t[0xCC] = cmp("CPY", amAbs, 4, false, func(c *Chip) uint8 { return c.Y })
	t[0xCD] = cmp("CMP", amAbs, 4, false, func(c *Chip) uint8 { return c.A })
	t[0xCE] = rw("DEC", amAbs, 6, (*Chip).dec)
	t[0xCF] = rw("DCP", amAbs, 6, (*Chip).dcp)

	t[0xD0] = branchOp("BNE", 2, true, func(c *Chip) bool { return c.Z == 0 })
	t[0xD1] = cmp("CMP", amIZY, 5, true, func(c *Chip) uint8 { return c.A })
	t[0xD2] = killOp()
	t[0xD3] = rw("DCP", amIZY, 8, (*Chip).dcp)
	t[0xD4] = nop(amZPX, 4, false)
	t[0xD5] = cmp("CMP", amZPX, 4, false, func(c *Chip) uint8 { return c.A })
	t[0xD6] = rw("DEC", amZPX, 6, (*Chip).dec)
	t[0xD7] = rw("DCP", amZPX, 6, (*Chip).dcp)
	t[0xD8] = impl("CLD", 2, func(c *Chip) { c.D = 0 })
	t[0xD9] = cmp("CMP", amAbsY, 4, true, func(c *Chip) uint8 { return c.A })
	t[0xDA] = nop(amImp1, 2, false)
	t[0xDB] = rw("DCP", amAbsY, 7, (*Chip).dcp)
	t[0xDC] = nop(amAbsX, 4, true)
	t[0xDD] = cmp("CMP", amAbsX, 4, true, func(c *Chip) uint8 { return c.A })
	t[0xDE] = rw("DEC", amAbsX, 7, (*Chip).dec)
	t[0xDF] = rw("DCP", amAbsX, 7, (*Chip).dcp)

	t[0xE0] = cmp("CPX", amImm, 2, false, func(c *Chip) uint8 { return c.X })
	t[0xE1] = ro("SBC", amIZX, 6, false, (*Chip).sbc)
	t[0xE2] = nop(amImm, 2, false)
	t[0xE3] = rw("ISC", amIZX, 8, (*Chip).isc)
	t[0xE4] = cmp("CPX", amZP, 3, false, func(c *Chip) uint8 { return c.X })
	t[0xE5] = ro("SBC", amZP, 3, false, (*Chip).sbc)
	t[0xE6] = rw("INC", amZP, 5, (*Chip).inc)
	t[0xE7] = rw("ISC", amZP, 5, (*Chip).isc)
	t[0xE8] = impl("INX", 2, (*Chip).inx)
	t[0xE9] = ro("SBC", amImm, 2, false, (*Chip).sbc)
	t[0xEA] = nop(amImp1, 2, false)
	t[0xEB] = ro("SBC", amImm, 2, false, (*Chip).sbc)
	t[0xEC] = cmp("CPX", amAbs, 4, false, func(c *Chip) uint8 { return c.X })
	t[0xED] = ro("SBC", amAbs, 4, false, (*Chip).sbc)
	t[0xEE] = rw("INC", amAbs, 6, (*Chip).inc)
	t[0xEF] = rw("ISC", amAbs, 6, (*Chip).isc)

	t[0xF0] = branchOp("BEQ", 2, true, func(c *Chip) bool { return c.Z == 1 })
	t[0xF1] = ro("SBC", amIZY, 5, true, (*Chip).sbc)
	t[0xF2] = killOp()
	t[0xF3] = rw("ISC", amIZY, 8, (*Chip).isc)
	t[0xF4] = nop(amZPX, 4, false)
	t[0xF5] = ro("SBC", amZPX, 4, false, (*Chip).sbc)
	t[0xF6] = rw("INC", amZPX, 6, (*Chip).inc)
	t[0xF7] = rw("ISC", amZPX, 6, (*Chip).isc)
	t[0xF8] = impl("SED", 2, func(c *Chip) { c.D = 1 })
	t[0xF9] = ro("SBC", amAbsY, 4, true, (*Chip).sbc)
	t[0xFA] = nop(amImp1, 2, false)
	t[0xFB] = rw("ISC", amAbsY, 7, (*Chip).isc)
	t[0xFC] = nop(amAbsX, 4, true)
	t[0xFD] = ro("SBC", amAbsX, 4, true, (*Chip).sbc)
	t[0xFE] = rw("INC", amAbsX, 7, (*Chip).inc)
	t[0xFF] = rw("ISC", amAbsX, 7, (*Chip).isc)

	return t
}

// newCMOSTable derives the 65C02 table from NMOS6502's: the official
// opcode set behaves identically (the JMP bug fix and BCD Z/N timing
// come from variantInfo, not the table), and every opcode NMOS left
// undocumented is either reclaimed as a documented CMOS instruction or
// collapses to a plain NOP of the same addressing mode/cycle count it
// had on NMOS.
func newCMOSTable() [256]opEntry {
	t := newNMOSTable()

	toNop := func(op uint8) {
		old := t[op]
		t[op] = ro("NOP", old.mode, old.cycles, false, func(c *Chip, val uint8) {})
	}
	for _, op := range []uint8{
		0x03, 0x07, 0x0B, 0x0F, 0x13, 0x17, 0x1B, 0x1F,
		0x23, 0x27, 0x2B, 0x2F, 0x33, 0x37, 0x3B, 0x3F,
		0x43, 0x47, 0x4B, 0x4F, 0x53, 0x57, 0x5B, 0x5F,
		0x63, 0x67, 0x6B, 0x6F, 0x73, 0x77, 0x7B, 0x7F,
		0x83, 0x87, 0x8B, 0x8F, 0x93, 0x97, 0x9B, 0x9F,
		0xA3, 0xA7, 0xAB, 0xAF, 0xB3, 0xB7, 0xBB, 0xBF,
		0xC3, 0xC7, 0xCB, 0xCF, 0xD3, 0xD7, 0xDB, 0xDF,
		0xE3, 0xE7, 0xEB, 0xEF, 0xF3, 0xF7, 0xFB, 0xFF,
	} {
		toNop(op)
	}
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		t[op] = stpOp()
	}

	t[0x04] = rw("TSB", amZP, 5, (*Chip).tsb)
	t[0x0C] = rw("TSB", amAbs, 6, (*Chip).tsb)
	t[0x14] = rw("TRB", amZP, 5, (*Chip).trb)
	t[0x1C] = rw("TRB", amAbs, 6, (*Chip).trb)
	t[0x64] = rw("STZ", amZP, 3, func(c *Chip, _ uint8) uint8 { return c.stz() })
	t[0x74] = rw("STZ", amZPX, 4, func(c *Chip, _ uint8) uint8 { return c.stz() })
	t[0x9C] = rw("STZ", amAbs, 4, func(c *Chip, _ uint8) uint8 { return c.stz() })
	t[0x9E] = rw("STZ", amAbsX, 5, func(c *Chip, _ uint8) uint8 { return c.stz() })
	t[0x80] = branchOp("BRA", 3, false, func(c *Chip) bool { return true })
	t[0x1A] = rw("INC", amAcc, 2, (*Chip).inc)
	t[0x3A] = rw("DEC", amAcc, 2, (*Chip).dec)
	t[0xDA] = impl("PHX", 3, (*Chip).phx)
	t[0xFA] = impl("PLX", 4, (*Chip).plx)
	t[0x5A] = impl("PHY", 3, (*Chip).phy)
	t[0x7A] = impl("PLY", 4, (*Chip).ply)
	t[0x89] = bitOp("BIT", amImm, 2, true)
	t[0x34] = bitOp("BIT", amZPX, 4, false)
	t[0x3C] = bitOp("BIT", amAbsX, 4, false)
	t[0x7C] = jmpOp(amAbsIndX, 6)
	t[0xCB] = waiOp()
	t[0xDB] = stpOp()

	t[0x12] = ro("ORA", amInd, 5, false, (*Chip).ora)
	t[0x32] = ro("AND", amInd, 5, false, (*Chip).and)
	t[0x52] = ro("EOR", amInd, 5, false, (*Chip).eor)
	t[0x72] = ro("ADC", amInd, 5, false, (*Chip).adc)
	t[0x92] = st("STA", amInd, 5, func(c *Chip) uint8 { return c.A })
	t[0xB2] = ro("LDA", amInd, 5, false, func(c *Chip, v uint8) { c.A = v; c.setZN(v) })
	t[0xD2] = ro("CMP", amInd, 5, false, func(c *Chip, v uint8) { c.compare(c.A, v) })
	t[0xF2] = ro("SBC", amInd, 5, false, (*Chip).sbc)

	return t
}

// newR65C02Table adds the Rockwell bit-test/bit-branch family at the
// column-7/column-F slots the CMOS table turned into plain NOPs.
func newR65C02Table() [256]opEntry {
	t := newCMOSTable()
	rmbSlots := []uint8{0x07, 0x17, 0x27, 0x37, 0x47, 0x57, 0x67, 0x77}
	smbSlots := []uint8{0x87, 0x97, 0xA7, 0xB7, 0xC7, 0xD7, 0xE7, 0xF7}
	bbrSlots := []uint8{0x0F, 0x1F, 0x2F, 0x3F, 0x4F, 0x5F, 0x6F, 0x7F}
	bbsSlots := []uint8{0x8F, 0x9F, 0xAF, 0xBF, 0xCF, 0xDF, 0xEF, 0xFF}
	for n := uint8(0); n < 8; n++ {
		t[rmbSlots[n]] = rmbOp(n)
		t[smbSlots[n]] = smbOp(n)
		t[bbrSlots[n]] = bbrOp(n)
		t[bbsSlots[n]] = bbsOp(n)
	}
	return t
}

// newHuCTable adds the HuC6280-only instructions at slots the Rockwell
// table left as NOP/STP (historical HuC6280 opcode numbers for these
// are not load-bearing for spec.md's semantics, so practical available
// slots were chosen).
func newHuCTable() [256]opEntry {
	t := newR65C02Table()

	t[0x02] = impl("SXY", 3, (*Chip).hsxy)
	t[0x22] = impl("SAX", 3, (*Chip).hsax)
	t[0x42] = impl("SAY", 3, (*Chip).hsay)
	t[0xF4] = impl("SET", 2, (*Chip).set)

	t[0x73] = blockMoveOp("TII", (*Chip).tii)
	t[0xC3] = blockMoveOp("TDD", (*Chip).tdd)
	t[0xD3] = blockMoveOp("TIN", (*Chip).tin)
	t[0xE3] = blockMoveOp("TIA", (*Chip).tia)
	t[0xF3] = blockMoveOp("TAI", (*Chip).tai)

	t[0x83] = tstOp(amImmZP, 5)
	t[0xA3] = tstOp(amImmZPX, 6)
	t[0x93] = tstOp(amImmAbs, 7)
	t[0xB3] = tstOp(amImmAbsX, 7)

	return t
}

var dispatchTables = map[Variant]*[256]opEntry{}

func init() {
	nmos := newNMOSTable()
	dispatchTables[NMOS6502] = &nmos
	ricoh := newNMOSTable()
	dispatchTables[NMOSRicoh] = &ricoh
	cmos := newCMOSTable()
	dispatchTables[CMOS65C02] = &cmos
	rockwell := newR65C02Table()
	dispatchTables[R65C02] = &rockwell
	huc := newHuCTable()
	dispatchTables[HuC6280] = &huc
}

// Execute runs instructions until at least minCycles have elapsed or
// the CPU halts, returning the number of cycles actually run (spec.md
// §4.5/§6). A single call always executes at least one instruction's
// worth of work when the CPU isn't already halted or waiting.
func (c *Chip) Execute(minCycles int) int {
	ran := 0
	table := dispatchTables[c.variant]
	for {
		if c.state == stateHalted {
			return ran
		}
		if c.rdy != nil && c.rdy.Raised() {
			return ran
		}
		c.pollInterruptSenders()
		if c.state == stateWaiting {
			return ran
		}
		c.mem.ReadN(c.fetchBuf[:c.info.fetchWidth], c.PC)
		buf := c.fetchBuf[:c.info.fetchWidth]
		entry := table[buf[0]]
		pc := c.PC
		extra := entry.run(c, buf, pc)
		cycles := entry.cycles + extra
		ran += cycles
		if c.Trace != nil {
			c.Trace(c.traceLine(pc, buf, entry, cycles))
		}
		if c.pendingErr != nil {
			return ran
		}
		if ran >= minCycles {
			return ran
		}
	}
}

// IRQ delivers a maskable interrupt: ignored if I is set or the CPU is
// halted; clears Waiting if the CPU was parked in WAI.
func (c *Chip) IRQ() {
	if c.state == stateHalted || c.I == 1 {
		return
	}
	c.deliverInterrupt(c.info.intVecBase + IRQVectorOffset)
}

// NMI delivers a non-maskable interrupt: always honored unless halted.
func (c *Chip) NMI() {
	if c.state == stateHalted {
		return
	}
	c.deliverInterrupt(c.info.intVecBase + NMIVectorOffset)
}

func (c *Chip) deliverInterrupt(vecAddr uint16) {
	ret := c.PC
	c.pushStack(uint8(ret >> 8))
	c.pushStack(uint8(ret))
	c.pushStack(c.packFlags(0))
	c.enterInterrupt(vecAddr)
}

// pollInterruptSenders checks the host-installed irq/nmi Sender lines
// once per Execute iteration and delivers through the same path IRQ()/
// NMI() use. NMI always wins over a simultaneous IRQ raise. A no-op
// when neither Sender was installed via Config.
func (c *Chip) pollInterruptSenders() {
	if c.nmi != nil && c.nmi.Raised() {
		c.NMI()
		return
	}
	if c.irq != nil && c.irq.Raised() {
		c.IRQ()
	}
}

// OpMode is the addressing mode of an opcode, exported so callers like
// the disassemble package can format operands without reaching into
// cpu's internal dispatch tables.
type OpMode int

const (
	ModeImplied OpMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZP
	ModeZPX
	ModeZPY
	ModeZPRel
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeAbsoluteIndirect
	ModeAbsoluteIndirectX
	ModeRelative
	ModeImmZP
	ModeImmZPX
	ModeImmAbs
	ModeImmAbsX
	ModeBlockMove
)

var exportedModes = map[addrMode]OpMode{
	amImp1:     ModeImplied,
	amImp2:     ModeImplied,
	amImp3:     ModeBlockMove,
	amAcc:      ModeAccumulator,
	amImm:      ModeImmediate,
	amZP:       ModeZP,
	amZPX:      ModeZPX,
	amZPY:      ModeZPY,
	amZPRel:    ModeZPRel,
	amInd:      ModeIndirect,
	amIZX:      ModeIndirectX,
	amIZY:      ModeIndirectY,
	amAbs:      ModeAbsolute,
	amAbsX:     ModeAbsoluteX,
	amAbsY:     ModeAbsoluteY,
	amAbsInd:   ModeAbsoluteIndirect,
	amAbsIndX:  ModeAbsoluteIndirectX,
	amRel:      ModeRelative,
	amImmZP:    ModeImmZP,
	amImmZPX:   ModeImmZPX,
	amImmAbs:   ModeImmAbs,
	amImmAbsX:  ModeImmAbsX,
}

// OpInfo returns the mnemonic, exported addressing mode, and total
// instruction length (opcode byte included) for a single opcode under
// variant. Used by the disassemble package; Execute itself dispatches
// through the unexported opEntry table directly.
func OpInfo(variant Variant, opcode uint8) (mnemonic string, mode OpMode, length int) {
	entry := dispatchTables[variant][opcode]
	return entry.mnemonic, exportedModes[entry.mode], entry.mode.length()
}
