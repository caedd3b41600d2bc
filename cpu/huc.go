package cpu

// HuC6280-only additions (spec.md §4.4 "HuC6280 additions"): the SET
// instruction (sets the T flag), the HSAX/HSAY/HSXY register swaps
// (named Hxxx here to avoid colliding with the unrelated NMOS illegal
// SAX in illegal.go — original_source/cpu65.c calls out this exact
// naming clash in its own comment above OP_SAX), the five block-move
// instructions, and TST (the am_immzp/am_immzx/am_immab/am_immax
// "multi-byte immediate" family).
//
// The block-move opcodes are a genuine gap in original_source/cpu65.c:
// its am_imp3 handling is a bare abort() stub (never implemented), so
// these five are built from the documented HuC6280 instruction set
// rather than adapted from working reference code.

// set raises the T flag.
func (c *Chip) set() { c.T = 1 }

// hsax swaps A and X (the HuC6280 SAX, distinct from the NMOS illegal
// SAX/AXS store-A&X opcode).
func (c *Chip) hsax() { c.A, c.X = c.X, c.A }

// hsay swaps A and Y.
func (c *Chip) hsay() { c.A, c.Y = c.Y, c.A }

// hsxy swaps X and Y.
func (c *Chip) hsxy() { c.X, c.Y = c.Y, c.X }

// tst implements the am_immzp/am_immzx/am_immab/am_immax family: a
// BIT-style test between an immediate byte and memory, affecting flags
// only. op is the already-resolved memory operand; imm is the raw
// immediate byte (buf[1] for every one of these modes).
func (c *Chip) tst(op operand, imm uint8) {
	c.Z = 0
	if op.val&imm == 0 {
		c.Z = 1
	}
	c.N = bit(op.val, 0x80)
	c.V = bit(op.val, 0x40)
}

// blockLen reads the 16 bit length operand of a block-move instruction;
// a length of 0 means the full 65536-byte span on real hardware.
func blockLen(buf []uint8, offset int) int {
	n := int(buf[offset]) | int(buf[offset+1])<<8
	if n == 0 {
		return 0x10000
	}
	return n
}

// blockMoveOperands decodes the common [opcode, srcLo, srcHi, dstLo,
// dstHi, lenLo, lenHi] layout (am_imp3) shared by all five block
// instructions.
func blockMoveOperands(buf []uint8) (src, dst uint16, length int) {
	src = uint16(buf[1]) | uint16(buf[2])<<8
	dst = uint16(buf[3]) | uint16(buf[4])<<8
	length = blockLen(buf, 5)
	return
}

// tii: transfer increment increment — both pointers advance.
func (c *Chip) tii(buf []uint8) {
	src, dst, n := blockMoveOperands(buf)
	for i := 0; i < n; i++ {
		c.write8(dst+uint16(i), c.read8(src+uint16(i)))
	}
}

// tdd: transfer decrement decrement — both pointers recede, starting
// at the given addresses and working downward.
func (c *Chip) tdd(buf []uint8) {
	src, dst, n := blockMoveOperands(buf)
	for i := 0; i < n; i++ {
		c.write8(dst-uint16(i), c.read8(src-uint16(i)))
	}
}

// tia: transfer increment alternate — source advances, destination
// alternates between dst and dst+1 every other byte.
func (c *Chip) tia(buf []uint8) {
	src, dst, n := blockMoveOperands(buf)
	for i := 0; i < n; i++ {
		d := dst
		if i%2 == 1 {
			d = dst + 1
		}
		c.write8(d, c.read8(src+uint16(i)))
	}
}

// tai: transfer alternate increment — source alternates between src and
// src+1, destination advances.
func (c *Chip) tai(buf []uint8) {
	src, dst, n := blockMoveOperands(buf)
	for i := 0; i < n; i++ {
		s := src
		if i%2 == 1 {
			s = src + 1
		}
		c.write8(dst+uint16(i), c.read8(s))
	}
}

// tin: transfer increment none — source advances, destination is fixed
// (used to stream a ramp of bytes to a single I/O port).
func (c *Chip) tin(buf []uint8) {
	src, dst, n := blockMoveOperands(buf)
	for i := 0; i < n; i++ {
		c.write8(dst, c.read8(src+uint16(i)))
	}
}
