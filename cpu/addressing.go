package cpu

// addrMode enumerates every addressing mode named in spec.md §4.3,
// including the HuC6280-only modes absent from the teacher (which only
// covers NMOS/CMOS) and grounded instead on original_source/cpu65.c's
// `enum address_mode`.
type addrMode int

const (
	amImp1    addrMode = iota // implied, 1 byte total (no operand bytes)
	amImp2                    // implied, 2 bytes total (operand byte present but unused)
	amImp3                    // implied, 7 bytes total (HuC6280 block-move)
	amImm                     // #i
	amZP                      // d
	amZPX                     // d,x
	amZPY                     // d,y
	amZPRel                   // d,rel (HuC6280: BBRn/BBSn-style zero page + branch offset)
	amInd                     // (zp)
	amIZX                     // (zp,x)
	amIZY                     // (zp),y
	amAbs                     // a
	amAbsX                    // a,x
	amAbsY                    // a,y
	amAbsInd                  // (a)
	amAbsIndX                 // (a,x)
	amRel                     // PC-relative (branches)
	amImmZP                   // #i,d   (HuC6280)
	amImmZPX                  // #i,d,x (HuC6280)
	amImmAbs                  // #i,a   (HuC6280)
	amImmAbsX                 // #i,a,x (HuC6280)
	amAcc                     // A
)

// length returns the total instruction length in bytes (opcode included)
// for modes with a fixed length. amZPRel/amRel/branch lengths are fixed
// at 2 or 3 and handled directly since a handful of opcodes special-case
// them (BBRn/BBSn carry both a zp operand and a branch displacement).
func (m addrMode) length() int {
	switch m {
	case amImp1, amAcc:
		return 1
	case amImp2, amImm, amZP, amZPX, amZPY, amInd, amIZX, amIZY, amRel:
		return 2
	case amZPRel, amAbs, amAbsX, amAbsY, amAbsInd, amAbsIndX, amImmZP, amImmZPX:
		return 3
	case amImmAbs, amImmAbsX:
		return 4
	case amImp3:
		return 7
	}
	return 1
}

// operand is what the resolver hands back to an opcode handler: a value
// ready to read, and, for memory-target modes, the effective address to
// write back to.
type operand struct {
	val     uint8
	addr    uint16
	hasAddr bool
}

// zpWord reads a 16 bit pointer out of zero page starting at n, wrapping
// the high byte fetch at (n+1)&0xFF — the mandatory zero-page pointer
// wrap of spec.md §4.3.
func (c *Chip) zpWord(n uint8) uint16 {
	lo := c.zp[n]
	hi := c.zp[uint8(n+1)]
	return uint16(lo) | uint16(hi)<<8
}

// pageCrossed reports whether adding index to base crosses a page
// boundary, per spec.md §4.3's (base+index)^base > 0xFF formula (taken
// directly from original_source/cpu65.c's GET_M macro bodies).
func pageCrossed(base uint16, index uint8) bool {
	return (base+uint16(index))^base > 0xFF
}

// resolve implements the read-operand service of spec.md §4.3: given the
// addressing mode and the operand bytes following the opcode (buf[1:]),
// it produces the operand and any page-cross penalty incurred (only
// meaningful when the opcode's pcp flag is set; callers gate on that).
func (c *Chip) resolve(mode addrMode, buf []uint8) (operand, bool) {
	switch mode {
	case amAcc:
		return operand{val: c.A}, false
	case amImm:
		return operand{val: buf[1]}, false
	case amZP:
		addr := uint16(buf[1])
		return operand{val: c.zp[addr], addr: addr, hasAddr: true}, false
	case amZPX:
		addr := uint16(uint8(buf[1] + c.X))
		return operand{val: c.zp[addr], addr: addr, hasAddr: true}, false
	case amZPY:
		addr := uint16(uint8(buf[1] + c.Y))
		return operand{val: c.zp[addr], addr: addr, hasAddr: true}, false
	case amInd:
		addr := c.zpWord(buf[1])
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, false
	case amIZX:
		addr := c.zpWord(uint8(buf[1] + c.X))
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, false
	case amIZY:
		base := c.zpWord(buf[1])
		crossed := pageCrossed(base, c.Y)
		addr := base + uint16(c.Y)
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, crossed
	case amAbs:
		addr := uint16(buf[1]) | uint16(buf[2])<<8
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, false
	case amAbsX:
		base := uint16(buf[1]) | uint16(buf[2])<<8
		crossed := pageCrossed(base, c.X)
		addr := base + uint16(c.X)
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, crossed
	case amAbsY:
		base := uint16(buf[1]) | uint16(buf[2])<<8
		crossed := pageCrossed(base, c.Y)
		addr := base + uint16(c.Y)
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, crossed
	case amImmZP:
		addr := uint16(buf[2])
		return operand{val: c.zp[addr], addr: addr, hasAddr: true}, false
	case amImmZPX:
		addr := uint16(uint8(buf[2] + c.X))
		return operand{val: c.zp[addr], addr: addr, hasAddr: true}, false
	case amImmAbs:
		addr := uint16(buf[2]) | uint16(buf[3])<<8
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, false
	case amImmAbsX:
		addr := (uint16(buf[2]) | uint16(buf[3])<<8) + uint16(c.X)
		return operand{val: c.read8(addr), addr: addr, hasAddr: true}, false
	}
	panic(InvalidCPUState{Reason: "resolve: unreachable addressing mode"})
}

// resolveAddr computes the effective address for a store instruction
// without reading through it first, for modes that target memory.
func (c *Chip) resolveAddr(mode addrMode, buf []uint8) uint16 {
	switch mode {
	case amZP:
		return uint16(buf[1])
	case amZPX:
		return uint16(uint8(buf[1] + c.X))
	case amZPY:
		return uint16(uint8(buf[1] + c.Y))
	case amInd:
		return c.zpWord(buf[1])
	case amIZX:
		return c.zpWord(uint8(buf[1] + c.X))
	case amIZY:
		return c.zpWord(buf[1]) + uint16(c.Y)
	case amAbs:
		return uint16(buf[1]) | uint16(buf[2])<<8
	case amAbsX:
		return (uint16(buf[1]) | uint16(buf[2])<<8) + uint16(c.X)
	case amAbsY:
		return (uint16(buf[1]) | uint16(buf[2])<<8) + uint16(c.Y)
	}
	panic(InvalidCPUState{Reason: "resolveAddr: mode has no memory target"})
}

// writeback implements the write-operand service of spec.md §4.3.
func (c *Chip) writeback(mode addrMode, op operand, val uint8) {
	if mode == amAcc {
		c.A = val
		return
	}
	if !op.hasAddr {
		panic(InvalidCPUState{Reason: "writeback: mode has no memory target"})
	}
	c.write8(op.addr, val)
}

// absoluteIndirectTarget resolves the pointer operand of JMP (a) / JMP
// (a,X), applying the NMOS $xxFF page-wrap bug where the variant has it
// (spec.md §4.4 JMP, testable property in spec.md §8).
func (c *Chip) absoluteIndirectTarget(mode addrMode, buf []uint8) uint16 {
	ptr := uint16(buf[1]) | uint16(buf[2])<<8
	if mode == amAbsIndX {
		ptr += uint16(c.X)
	}
	if c.info.fixedJMPBug && mode == amAbsInd && buf[1] == 0xFF {
		lo := c.read8(ptr)
		hi := c.read8(ptr & 0xFF00) // wraps to $xx00, not $(xx+1)00
		return uint16(lo) | uint16(hi)<<8
	}
	lo := c.read8(ptr)
	hi := c.read8(ptr + 1)
	return uint16(lo) | uint16(hi)<<8
}
