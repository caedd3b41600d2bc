package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatReadWriteWraps(t *testing.T) {
	f := NewFlat()
	f.WriteN([]uint8{0xAA, 0xBB}, 0xFFFF)
	var buf [2]uint8
	f.ReadN(buf[:], 0xFFFF)
	require.Equal(t, []uint8{0xAA, 0xBB}, buf[:])
	require.Equal(t, uint8(0xBB), f.mem[0x0000]) // wrapped past $FFFF
}

func TestFlatPowerOnFillsWithFillByte(t *testing.T) {
	f := NewFlat()
	f.Fill = 0xEA
	f.PowerOn()
	var buf [1]uint8
	f.ReadN(buf[:], 0x1234)
	require.Equal(t, uint8(0xEA), buf[0])
}

func TestLoadAt(t *testing.T) {
	f := NewFlat()
	f.LoadAt(0x8000, []uint8{0x01, 0x02, 0x03})
	var buf [3]uint8
	f.ReadN(buf[:], 0x8000)
	require.Equal(t, []uint8{0x01, 0x02, 0x03}, buf[:])
}

func TestPokeVectorLittleEndian(t *testing.T) {
	f := NewFlat()
	f.PokeVector(0xFFFC, 0x1234)
	var buf [2]uint8
	f.ReadN(buf[:], 0xFFFC)
	require.Equal(t, uint8(0x34), buf[0])
	require.Equal(t, uint8(0x12), buf[1])
}

func TestZeroPageStackSize(t *testing.T) {
	zp := ZeroPageStack()
	require.Len(t, zp, 512)
}

func TestRequireZeroPageStack(t *testing.T) {
	require.NoError(t, RequireZeroPageStack(make([]uint8, 512)))
	require.Error(t, RequireZeroPageStack(make([]uint8, 256)))
}
