package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixfiveoh/m65xx/memory"
)

func newStackChip(t *testing.T) *Chip {
	t.Helper()
	mem := memory.NewFlat()
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: NMOS6502, BCD: true}, zp, mem)
	require.NoError(t, err)
	return c
}

func TestPHAPLARoundTrip(t *testing.T) {
	c := newStackChip(t)
	c.A = 0x42
	c.pha()
	c.A = 0x00
	c.pla()
	require.Equal(t, uint8(0x42), c.A)
}

func TestPHPAlwaysForcesBreakBit(t *testing.T) {
	c := newStackChip(t)
	c.php()
	pushed := c.popStack()
	require.Equal(t, uint8(1), bit(pushed, flagB))
}

func TestJSRPushesReturnMinusOne(t *testing.T) {
	c := newStackChip(t)
	target := c.jsr([]uint8{0x20, 0x00, 0x03}, 0x0200)
	require.Equal(t, uint16(0x0300), target)
	lo := c.popStack()
	hi := c.popStack()
	require.Equal(t, uint16(0x0202), uint16(hi)<<8|uint16(lo))
}

func TestRTSAddsOneToPoppedAddress(t *testing.T) {
	c := newStackChip(t)
	c.pushStack(0x02) // hi
	c.pushStack(0x02) // lo
	require.Equal(t, uint16(0x0203), c.rts())
}

func TestBRKSetsIAndVectorsThroughIRQ(t *testing.T) {
	c := newStackChip(t)
	c.mem.WriteN([]uint8{0x00, 0x04}, 0xFFFE)
	c.brk(0x0200)
	require.Equal(t, uint16(0x0400), c.PC)
	require.Equal(t, uint8(1), c.I)
}

func TestRTIDoesNotAdjustReturnAddress(t *testing.T) {
	c := newStackChip(t)
	c.pushStack(0x02) // hi
	c.pushStack(0x00) // lo
	c.pushStack(c.packFlags(1))
	require.Equal(t, uint16(0x0200), c.rti())
}

func TestEnterInterruptClearsDecimalOnCMOS(t *testing.T) {
	mem := memory.NewFlat()
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: CMOS65C02, BCD: true}, zp, mem)
	require.NoError(t, err)
	c.D = 1
	c.enterInterrupt(0xFFFE)
	require.Equal(t, uint8(0), c.D)
}

func TestEnterInterruptLeavesDecimalOnNMOS(t *testing.T) {
	c := newStackChip(t)
	c.D = 1
	c.enterInterrupt(0xFFFE)
	require.Equal(t, uint8(1), c.D)
}
