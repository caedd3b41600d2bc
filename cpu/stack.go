package cpu

// PHA/PLA/PHP/PLP/PHX/PHY/PLX/PLY/JSR/RTS/BRK/RTI (spec.md §4.4). PHX/
// PHY/PLX/PLY are CMOS/R65C02/HuC only; the dispatch table simply never
// wires them for NMOS variants. Grounded on original_source/cpu65.c's
// op_brk/op_rti/op_jsr/op_rts and the teacher's iPHP/iPLP/iJSR/iRTS/iBRK/
// iRTI in _examples/jmchacon-6502/cpu/cpu.go, adapted to single-shot
// dispatch.

func (c *Chip) pha() { c.pushStack(c.A) }
func (c *Chip) pla() { c.A = c.popStack(); c.setZN(c.A) }
func (c *Chip) phx() { c.pushStack(c.X) }
func (c *Chip) plx() { c.X = c.popStack(); c.setZN(c.X) }
func (c *Chip) phy() { c.pushStack(c.Y) }
func (c *Chip) ply() { c.Y = c.popStack(); c.setZN(c.Y) }

// php always forces B=1 on the pushed byte, per spec.md §4.4.
func (c *Chip) php() { c.pushStack(c.packFlags(1)) }

// plp pops through the variant's PLP mask.
func (c *Chip) plp() { c.unpackFlags(c.popStack()) }

// jsr pushes the address of the final byte of the JSR instruction (the
// two operand bytes at PC+1/PC+2, so the push targets PC+2) and jumps
// to the absolute target encoded in buf.
func (c *Chip) jsr(buf []uint8, pc uint16) uint16 {
	ret := pc + 2
	c.pushStack(uint8(ret >> 8))
	c.pushStack(uint8(ret))
	return uint16(buf[1]) | uint16(buf[2])<<8
}

// rts pops the return address and advances past the JSR operand bytes.
func (c *Chip) rts() uint16 {
	lo := c.popStack()
	hi := c.popStack()
	return (uint16(hi)<<8 | uint16(lo)) + 1
}

// brk pushes PC+2 (BRK carries a padding signature byte) and the flags
// with B forced to 1, sets I, applies the variant's interrupt entry
// mask to D (and T on HuC), then vectors through IRQVectorOffset —
// sharing the vector entry sequence with a real hardware IRQ/NMI.
func (c *Chip) brk(pc uint16) {
	ret := pc + 2
	c.pushStack(uint8(ret >> 8))
	c.pushStack(uint8(ret))
	c.pushStack(c.packFlags(1))
	c.B = 1 // OP_BRK sets B on HuC6280 (cpu65.c:357); a fixed 1 elsewhere already.
	c.enterInterrupt(c.info.intVecBase + IRQVectorOffset)
}

// rti pops flags (through the same variant PLP mask plp uses) then the
// return address, with no +1 adjustment.
func (c *Chip) rti() uint16 {
	c.unpackFlags(c.popStack())
	lo := c.popStack()
	hi := c.popStack()
	return uint16(hi)<<8 | uint16(lo)
}

// enterInterrupt is the shared tail of BRK/IRQ/NMI entry: set I, clear D
// (and, on HuC, T) per the variant's intMask, then load PC from vecAddr.
func (c *Chip) enterInterrupt(vecAddr uint16) {
	c.I = 1
	if c.info.intMask&flagD == 0 {
		c.D = 0
	}
	if c.info.hasHuCExtras && c.info.intMask&flagT == 0 {
		c.T = 0
	}
	c.loadPCFromVector(vecAddr)
	c.state = stateRunning
}
