package cpu

// NMOS undocumented opcodes (spec.md §4.4 "Illegal/undocumented NMOS
// opcodes"), grounded on original_source/cpu65.c's OP_SLO/OP_RLA/OP_SRE/
// OP_RRA/OP_DCP/OP_ISC/OP_LAX/OP_AXS/OP_ANC/OP_ALR/OP_ARR/OP_XAA/OP_LXA/
// OP_SBX/OP_AHX/OP_SHY/OP_SHX/OP_LAS/OP_TAS. The nmosSAX name (rather
// than plain SAX) avoids colliding with HuC6280's unrelated SAX
// register-swap in huc.go — the two share a mnemonic in the historical
// 6502/HuC literature but nothing else.

// slo: ASL the operand, then OR it into A.
func (c *Chip) slo(val uint8) uint8 {
	shifted := c.asl(val)
	c.A |= shifted
	c.setZN(c.A)
	return shifted
}

// rla: ROL the operand, then AND it into A.
func (c *Chip) rla(val uint8) uint8 {
	rotated := c.rol(val)
	c.A &= rotated
	c.setZN(c.A)
	return rotated
}

// sre: LSR the operand, then EOR it into A.
func (c *Chip) sre(val uint8) uint8 {
	shifted := c.lsr(val)
	c.A ^= shifted
	c.setZN(c.A)
	return shifted
}

// rra: ROR the operand, then ADC it into A.
func (c *Chip) rra(val uint8) uint8 {
	rotated := c.ror(val)
	c.adc(rotated)
	return rotated
}

// dcp: DEC the operand, then CMP A against it.
func (c *Chip) dcp(val uint8) uint8 {
	dec := val - 1
	c.compare(c.A, dec)
	return dec
}

// isc: INC the operand, then SBC it from A.
func (c *Chip) isc(val uint8) uint8 {
	inc := val + 1
	c.sbc(inc)
	return inc
}

// lax: load both A and X from the operand.
func (c *Chip) lax(val uint8) {
	c.A = val
	c.X = val
	c.setZN(c.A)
}

// nmosSAX stores A&X to memory (the common "SAX"/illegal-AXS form).
func (c *Chip) nmosSAX() uint8 {
	return c.A & c.X
}

// anc: AND with the immediate operand, then copy N into C (simulates
// ASL-into-carry on the original silicon's shared ALU path).
func (c *Chip) anc(val uint8) {
	c.A &= val
	c.setZN(c.A)
	c.C = c.N
}

// alr: AND with the operand, then LSR the result into A.
func (c *Chip) alr(val uint8) {
	tmp := c.A & val
	c.C = bit(tmp, 0x01)
	c.A = tmp >> 1
	c.setZN(c.A)
}

// arr: AND with the operand, rotate right through carry, then derive C
// and V from bits of the AND result rather than the normal ROR/ADC rule
// (original silicon's decimal-adjust hardware leaking into the illegal
// opcode's behavior).
func (c *Chip) arr(val uint8) {
	tmp := c.A & val
	c.A = (c.C << 7) | (tmp >> 1)
	c.C = bit(tmp, 0x80)
	c.setZN(c.A)
	c.V = (c.A>>6 ^ c.A>>5) & 1
}

// xaa: A = X & operand. Notoriously unstable on real silicon; spec.md
// fixes this one deterministic definition.
func (c *Chip) xaa(val uint8) {
	c.A = c.X & val
	c.setZN(c.A)
}

// lxa: A = X = (A | 0xFF) & operand, the "magic constant" form that
// passes the known Blargg test ROM (original_source/cpu65.c comment).
func (c *Chip) lxa(val uint8) {
	c.A = (c.A | 0xFF) & val
	c.X = c.A
	c.setZN(c.A)
}

// sbx: X = (A&X) - operand (unsigned), flags from the subtraction.
func (c *Chip) sbx(val uint8) {
	tmp := int(c.A&c.X) - int(val)
	c.setZN(uint8(tmp))
	c.C = 0
	if tmp >= 0 {
		c.C = 1
	}
	c.X = uint8(tmp)
}

// las: AND the stack pointer with the operand, loading the result into
// A, X, and S all at once.
func (c *Chip) las(val uint8) {
	c.S &= val
	c.A = c.S
	c.X = c.S
	c.setZN(c.A)
}

// unstableHighByteAnd implements the shared AHX/SHX/SHY/TAS shape:
// reg & ((addrHi)+1), the deterministic fixed form spec.md §4.4 mandates
// in place of the real chip's unstable behavior.
func unstableHighByteAnd(reg uint8, addrHi uint8) uint8 {
	return reg & (addrHi + 1)
}

// ahx stores A&X&(high byte of addr + 1).
func (c *Chip) ahx(addr uint16) uint8 {
	return unstableHighByteAnd(c.A&c.X, uint8(addr>>8))
}

// shy stores Y&(high byte of addr + 1).
func (c *Chip) shy(addr uint16) uint8 {
	return unstableHighByteAnd(c.Y, uint8(addr>>8))
}

// shx stores X&(high byte of addr + 1).
func (c *Chip) shx(addr uint16) uint8 {
	return unstableHighByteAnd(c.X, uint8(addr>>8))
}

// tas sets S = A&X, then stores S&(high byte of addr + 1).
func (c *Chip) tas(addr uint16) uint8 {
	c.S = c.A & c.X
	return unstableHighByteAnd(c.S, uint8(addr>>8))
}

// kil transitions the CPU to Halted; the dispatch loop surfaces
// HaltOpcode to the caller.
func (c *Chip) kil(opcode uint8) error {
	c.state = stateHalted
	c.haltOpcode = opcode
	return HaltOpcode{Opcode: opcode}
}
