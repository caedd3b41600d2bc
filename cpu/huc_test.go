package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixfiveoh/m65xx/memory"
)

func newHuCChip(t *testing.T) (*Chip, *memory.Flat) {
	t.Helper()
	mem := memory.NewFlat()
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: HuC6280, BCD: true}, zp, mem)
	require.NoError(t, err)
	return c, mem
}

func TestHSAXSwapsAAndX(t *testing.T) {
	c, _ := newHuCChip(t)
	c.A, c.X = 0x11, 0x22
	c.hsax()
	require.Equal(t, uint8(0x22), c.A)
	require.Equal(t, uint8(0x11), c.X)
}

func TestHSAYSwapsAAndY(t *testing.T) {
	c, _ := newHuCChip(t)
	c.A, c.Y = 0x11, 0x33
	c.hsay()
	require.Equal(t, uint8(0x33), c.A)
	require.Equal(t, uint8(0x11), c.Y)
}

func TestHSXYSwapsXAndY(t *testing.T) {
	c, _ := newHuCChip(t)
	c.X, c.Y = 0x22, 0x33
	c.hsxy()
	require.Equal(t, uint8(0x33), c.X)
	require.Equal(t, uint8(0x22), c.Y)
}

func TestSETRaisesTFlag(t *testing.T) {
	c, _ := newHuCChip(t)
	c.T = 0
	c.set()
	require.Equal(t, uint8(1), c.T)
}

func TestTIICopiesForward(t *testing.T) {
	c, mem := newHuCChip(t)
	mem.WriteN([]uint8{0x01, 0x02, 0x03}, 0x1000)
	buf := []uint8{0x73, 0x00, 0x10, 0x00, 0x20, 0x03, 0x00}
	c.tii(buf)
	var out [3]uint8
	mem.ReadN(out[:], 0x2000)
	require.Equal(t, []uint8{0x01, 0x02, 0x03}, out[:])
}

func TestTDDCopiesBackward(t *testing.T) {
	c, mem := newHuCChip(t)
	mem.WriteN([]uint8{0x01, 0x02, 0x03}, 0x0FFE) // src ends at 0x1000
	buf := []uint8{0xC3, 0x00, 0x10, 0x00, 0x20, 0x03, 0x00}
	c.tdd(buf)
	var out [3]uint8
	mem.ReadN(out[:], 0x1FFE)
	require.Equal(t, []uint8{0x01, 0x02, 0x03}, out[:])
}

func TestTIAAlternatesDestination(t *testing.T) {
	c, mem := newHuCChip(t)
	mem.WriteN([]uint8{0x11, 0x22, 0x33, 0x44}, 0x1000)
	buf := []uint8{0xE3, 0x00, 0x10, 0x00, 0x20, 0x04, 0x00}
	c.tia(buf)
	var out [2]uint8
	mem.ReadN(out[:], 0x2000)
	// even-indexed bytes (0x11, 0x33) land at dst; odd-indexed (0x22,
	// 0x44) land at dst+1, so only the last of each alternation sticks.
	require.Equal(t, uint8(0x33), out[0])
	require.Equal(t, uint8(0x44), out[1])
}

func TestTAIAlternatesSource(t *testing.T) {
	c, mem := newHuCChip(t)
	mem.WriteN([]uint8{0xAA, 0xBB}, 0x1000)
	buf := []uint8{0xF3, 0x00, 0x10, 0x00, 0x20, 0x04, 0x00}
	c.tai(buf)
	var out [4]uint8
	mem.ReadN(out[:], 0x2000)
	require.Equal(t, []uint8{0xAA, 0xBB, 0xAA, 0xBB}, out[:])
}

func TestTINFixedDestination(t *testing.T) {
	c, mem := newHuCChip(t)
	mem.WriteN([]uint8{0x01, 0x02, 0x03}, 0x1000)
	buf := []uint8{0xD3, 0x00, 0x10, 0x00, 0x20, 0x03, 0x00}
	c.tin(buf)
	var out [1]uint8
	mem.ReadN(out[:], 0x2000)
	require.Equal(t, uint8(0x03), out[0]) // last write wins
}

func TestBlockLenZeroMeansFullSpan(t *testing.T) {
	require.Equal(t, 0x10000, blockLen([]uint8{0, 0, 0, 0, 0}, 3))
}

func TestTSTSetsFlagsWithoutTouchingA(t *testing.T) {
	c, _ := newHuCChip(t)
	c.A = 0xFF // must be unaffected: TST never reads A
	c.tst(operand{val: 0xC0}, 0x0F)
	require.Equal(t, uint8(1), c.Z) // 0xC0 & 0x0F == 0
	require.Equal(t, uint8(1), c.N) // bit 7 of the memory operand
	require.Equal(t, uint8(1), c.V) // bit 6 of the memory operand
	require.Equal(t, uint8(0xFF), c.A)
}
