package cpu

// ASL/LSR/ROL/ROR, in both accumulator and memory forms (spec.md §4.4).
// The RMW instructions share one shape: resolve, shift, writeback,
// setZN — grounded on the teacher's loadInstruction/rmwInstruction/
// storeInstruction composition in _examples/jmchacon-6502/cpu/cpu.go,
// adapted here to the single-shot dispatch model.

func (c *Chip) asl(val uint8) uint8 {
	res := uint16(val) << 1
	c.setCarry(res)
	out := uint8(res)
	c.setZN(out)
	return out
}

func (c *Chip) lsr(val uint8) uint8 {
	c.C = bit(val, 0x01)
	out := val >> 1
	c.setZN(out)
	return out
}

func (c *Chip) rol(val uint8) uint8 {
	res := uint16(val)<<1 | uint16(c.C)
	c.setCarry(res)
	out := uint8(res)
	c.setZN(out)
	return out
}

func (c *Chip) ror(val uint8) uint8 {
	carryIn := c.C
	c.C = bit(val, 0x01)
	out := (val >> 1) | (carryIn << 7)
	c.setZN(out)
	return out
}
