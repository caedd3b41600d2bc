package cpu

// Register transfers and increment/decrement (spec.md §4.4): TAX/TXA/
// TAY/TYA/TSX/TXS, INX/INY/DEX/DEY, and the memory INC/DEC sharing the
// RMW shape with the shift instructions. TXS alone does not touch Z/N,
// matching every 65xx variant.

func (c *Chip) tax() { c.X = c.A; c.setZN(c.X) }
func (c *Chip) tay() { c.Y = c.A; c.setZN(c.Y) }
func (c *Chip) txa() { c.A = c.X; c.setZN(c.A) }
func (c *Chip) tya() { c.A = c.Y; c.setZN(c.A) }
func (c *Chip) tsx() { c.X = c.S; c.setZN(c.X) }
func (c *Chip) txs() { c.S = c.X }

func (c *Chip) inx() { c.X++; c.setZN(c.X) }
func (c *Chip) iny() { c.Y++; c.setZN(c.Y) }
func (c *Chip) dex() { c.X--; c.setZN(c.X) }
func (c *Chip) dey() { c.Y--; c.setZN(c.Y) }

func (c *Chip) inc(val uint8) uint8 {
	out := val + 1
	c.setZN(out)
	return out
}

func (c *Chip) dec(val uint8) uint8 {
	out := val - 1
	c.setZN(out)
	return out
}
