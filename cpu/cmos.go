package cpu

// CMOS-family additions shared by 65C02/R65C02/HuC6280 (spec.md §4.4):
// STZ, TRB, TSB, WAI, STP. Grounded on original_source/cpu65.c's
// OP_STZ/OP_TRB/OP_TSB/OP_WAI/OP_STP; the HuC-specific TRB variant in
// that source (OP_TRB_HUCXXX) is dead code never wired into its own
// dispatch table, so every CMOS-family variant here uses the one
// documented TRB/TSB form.

// stz returns the fixed value STZ writes back: zero.
func (c *Chip) stz() uint8 { return 0 }

// trb clears the bits of val that are set in A, storing the result, and
// sets Z from whether A&val was already zero (A itself is untouched).
func (c *Chip) trb(val uint8) uint8 {
	out := (^c.A) & val
	c.Z = 0
	if c.A&val == 0 {
		c.Z = 1
	}
	return out
}

// tsb sets the bits of val that are set in A, storing the result, with
// the same Z rule as trb.
func (c *Chip) tsb(val uint8) uint8 {
	out := c.A | val
	c.Z = 0
	if c.A&val == 0 {
		c.Z = 1
	}
	return out
}

// wai parks the CPU in the Waiting state; Running resumes on the next
// IRQ/NMI delivery.
func (c *Chip) wai() {
	c.state = stateWaiting
}

// stp transitions the CPU to Halted, the CMOS/HuC counterpart to KIL.
func (c *Chip) stp() error {
	c.state = stateHalted
	return HaltOpcode{Opcode: 0xDB}
}
