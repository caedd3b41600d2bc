package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/sixfiveoh/m65xx/memory"
)

func newALUChip(t *testing.T, variant Variant) *Chip {
	t.Helper()
	mem := memory.NewFlat()
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: variant, BCD: true}, zp, mem)
	require.NoError(t, err)
	return c
}

func TestADCBinary(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.A = 0x50
	c.C = 0
	c.adc(0x50)
	require.Equal(t, uint8(0xA0), c.A)
	require.Equal(t, uint8(0), c.C)
	require.Equal(t, uint8(1), c.V) // signed overflow: pos+pos=neg
	require.Equal(t, uint8(1), c.N)
}

func TestADCBinaryCarryOut(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.A = 0xFF
	c.C = 0
	c.adc(0x01)
	require.Equal(t, uint8(0x00), c.A)
	require.Equal(t, uint8(1), c.C)
	require.Equal(t, uint8(1), c.Z)
}

// TestADCDecimalNMOS checks the classic 6502 BCD example: 0x58 + 0x46 + C=0
// decimal is 58+46=104, carry set, A=0x04. NMOS takes Z from the binary
// sum and N from the sum after the low-digit correction, not from the
// final decimal result.
func TestADCDecimalNMOS(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.D = 1
	c.A = 0x58
	c.C = 0
	c.adc(0x46)
	require.Equal(t, uint8(0x04), c.A, "state: %s", spew.Sdump(c))
	require.Equal(t, uint8(1), c.C, "state: %s", spew.Sdump(c))
}

// TestADCDecimalCMOSTiming checks that on CMOS/R65C02/HuC the Z/N flags
// are derived from the final corrected decimal result rather than the
// pre-adjustment binary sum (spec.md §4.4's cmosNZTiming property).
func TestADCDecimalCMOSTiming(t *testing.T) {
	c := newALUChip(t, CMOS65C02)
	c.D = 1
	c.A = 0x99
	c.C = 0
	c.adc(0x01) // binary sum 0x9A (Z would be 0), decimal result 0x00
	require.Equal(t, uint8(0x00), c.A)
	require.Equal(t, uint8(1), c.Z)
}

func TestSBCBinary(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.A = 0x50
	c.C = 1 // no borrow
	c.sbc(0x30)
	require.Equal(t, uint8(0x20), c.A)
	require.Equal(t, uint8(1), c.C)
}

func TestSBCDecimalNMOS(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.D = 1
	c.A = 0x46
	c.C = 1 // no borrow
	c.sbc(0x12)
	require.Equal(t, uint8(0x34), c.A)
	require.Equal(t, uint8(1), c.C)
}

func TestRicohNeverAppliesDecimalFixup(t *testing.T) {
	c := newALUChip(t, NMOSRicoh)
	c.D = 1
	c.A = 0x58
	c.C = 0
	c.adc(0x46)
	// bcdCapable is forced false for Ricoh, so this must behave as pure
	// binary addition (0x58+0x46=0x9E) despite D=1.
	require.Equal(t, uint8(0x9E), c.A, "state: %s", spew.Sdump(c))
}

func TestANDORAEOR(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.A = 0xF0
	c.and(0x3C)
	require.Equal(t, uint8(0x30), c.A)

	c.A = 0xF0
	c.ora(0x0F)
	require.Equal(t, uint8(0xFF), c.A)

	c.A = 0xFF
	c.eor(0x0F)
	require.Equal(t, uint8(0xF0), c.A)
}

func TestCompare(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.compare(0x40, 0x40)
	require.Equal(t, uint8(1), c.Z)
	require.Equal(t, uint8(1), c.C)

	c.compare(0x10, 0x20)
	require.Equal(t, uint8(0), c.C)
	require.Equal(t, uint8(0), c.Z)
}

func TestBitMemoryForm(t *testing.T) {
	c := newALUChip(t, NMOS6502)
	c.A = 0x0F
	c.bit(0xC0, false)
	require.Equal(t, uint8(1), c.Z)
	require.Equal(t, uint8(1), c.N)
	require.Equal(t, uint8(1), c.V)
}

func TestBitImmediateFormOnlySetsZ(t *testing.T) {
	c := newALUChip(t, CMOS65C02)
	c.A = 0x0F
	c.N, c.V = 1, 1
	c.bit(0xC0, true)
	require.Equal(t, uint8(1), c.Z) // 0x0F & 0xC0 == 0
	// immediate BIT must not touch N/V.
	require.Equal(t, uint8(1), c.N)
	require.Equal(t, uint8(1), c.V)
}
