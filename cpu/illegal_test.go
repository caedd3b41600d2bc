package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixfiveoh/m65xx/memory"
)

func newIllegalChip(t *testing.T) *Chip {
	t.Helper()
	mem := memory.NewFlat()
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: NMOS6502, BCD: true}, zp, mem)
	require.NoError(t, err)
	return c
}

func TestSLOShiftsThenOrs(t *testing.T) {
	c := newIllegalChip(t)
	c.A = 0x0F
	out := c.slo(0x81) // ASL 0x81 -> 0x02, carry out
	require.Equal(t, uint8(0x02), out)
	require.Equal(t, uint8(0x0F), c.A) // 0x0F | 0x02 == 0x0F
	require.Equal(t, uint8(1), c.C)
}

func TestLAXLoadsBothAAndX(t *testing.T) {
	c := newIllegalChip(t)
	c.lax(0x80)
	require.Equal(t, uint8(0x80), c.A)
	require.Equal(t, uint8(0x80), c.X)
	require.Equal(t, uint8(1), c.N)
}

func TestNmosSAXStoresAAndX(t *testing.T) {
	c := newIllegalChip(t)
	c.A, c.X = 0xF0, 0x0F
	require.Equal(t, uint8(0x00), c.nmosSAX())
	c.A, c.X = 0xFC, 0x3F
	require.Equal(t, uint8(0x3C), c.nmosSAX())
}

func TestDCPDecrementsThenCompares(t *testing.T) {
	c := newIllegalChip(t)
	c.A = 0x10
	out := c.dcp(0x11)
	require.Equal(t, uint8(0x10), out)
	require.Equal(t, uint8(1), c.Z) // A(0x10) == dec(0x10)
	require.Equal(t, uint8(1), c.C)
}

func TestISCIncrementsThenSubtracts(t *testing.T) {
	c := newIllegalChip(t)
	c.A = 0x10
	c.C = 1 // no borrow
	out := c.isc(0x05)
	require.Equal(t, uint8(0x06), out)
	require.Equal(t, uint8(0x0A), c.A) // 0x10 - 0x06
}

func TestANCCopiesNIntoCarry(t *testing.T) {
	c := newIllegalChip(t)
	c.A = 0xFF
	c.anc(0x80)
	require.Equal(t, uint8(0x80), c.A)
	require.Equal(t, uint8(1), c.N)
	require.Equal(t, uint8(1), c.C)
}

func TestSBXSubtractsUnsigned(t *testing.T) {
	c := newIllegalChip(t)
	c.A, c.X = 0xFF, 0x0F
	c.sbx(0x05)
	require.Equal(t, uint8(0x0A), c.X) // (0xFF&0x0F)=0x0F - 0x05 = 0x0A
	require.Equal(t, uint8(1), c.C)
}

func TestSBXBorrows(t *testing.T) {
	c := newIllegalChip(t)
	c.A, c.X = 0x0F, 0x0F
	c.sbx(0x20)
	require.Equal(t, uint8(0), c.C)
}

func TestLASLoadsStackPointerMask(t *testing.T) {
	c := newIllegalChip(t)
	c.S = 0xFF
	c.las(0x0F)
	require.Equal(t, uint8(0x0F), c.S)
	require.Equal(t, uint8(0x0F), c.A)
	require.Equal(t, uint8(0x0F), c.X)
}

func TestUnstableHighByteAnd(t *testing.T) {
	require.Equal(t, uint8(0x10), unstableHighByteAnd(0xFF, 0x0F))
}

func TestTASSetsSThenStores(t *testing.T) {
	c := newIllegalChip(t)
	c.A, c.X = 0xF0, 0x0F
	out := c.tas(0x1234)
	require.Equal(t, uint8(0x00), c.S) // A&X
	require.Equal(t, uint8(0x00), out)
}

func TestKILHalts(t *testing.T) {
	c := newIllegalChip(t)
	err := c.kil(0x02)
	require.True(t, c.Halted())
	var haltErr HaltOpcode
	require.ErrorAs(t, err, &haltErr)
	require.Equal(t, uint8(0x02), haltErr.Opcode)
}
