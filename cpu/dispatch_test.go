package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/sixfiveoh/m65xx/memory"
)

func newExecChip(t *testing.T, variant Variant, load []uint8) (*Chip, *memory.Flat) {
	t.Helper()
	mem := memory.NewFlat()
	mem.LoadAt(0x0200, load)
	mem.PokeVector(0xFFFC, 0x0200)
	zp := memory.ZeroPageStack()
	c, err := New(Config{Variant: variant, BCD: true}, zp, mem)
	require.NoError(t, err)
	return c, mem
}

func TestExecuteLDAImmediate(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0xA9, 0x42})
	ran := c.Execute(2)
	require.Equal(t, uint8(0x42), c.A)
	require.Equal(t, 2, ran)
	require.Equal(t, uint16(0x0202), c.PC)
}

func TestExecuteSTAAbsolute(t *testing.T) {
	c, mem := newExecChip(t, NMOS6502, []uint8{0xA9, 0x7F, 0x8D, 0x00, 0x03})
	c.Execute(6)
	var buf [1]uint8
	mem.ReadN(buf[:], 0x0300)
	require.Equal(t, uint8(0x7F), buf[0])
}

func TestExecuteRunsUntilAtLeastMinCycles(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0xE8, 0xE8, 0xE8})
	ran := c.Execute(5)
	require.GreaterOrEqual(t, ran, 5)
	require.Equal(t, uint8(3), c.X)
}

func TestExecuteAlwaysRunsAtLeastOneInstruction(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0xA9, 0x01})
	ran := c.Execute(0)
	require.Equal(t, 2, ran)
}

func TestExecuteJMPAbsolute(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0x4C, 0x00, 0x03})
	c.Execute(3)
	require.Equal(t, uint16(0x0300), c.PC)
}

func TestExecuteJSRRTSRoundTrip(t *testing.T) {
	c, mem := newExecChip(t, NMOS6502, []uint8{0x20, 0x00, 0x03})
	mem.LoadAt(0x0300, []uint8{0xE8, 0x60}) // INX; RTS
	c.Execute(6 + 2 + 6) // JSR + INX + RTS, exactly — further cycles would
	// run off the end of the tiny test program and execute whatever zero
	// bytes follow as a BRK.
	require.Equal(t, uint8(1), c.X, "state: %s", spew.Sdump(c))
	require.Equal(t, uint16(0x0203), c.PC, "state: %s", spew.Sdump(c))
}

func TestExecuteBRKRTIRoundTrip(t *testing.T) {
	c, mem := newExecChip(t, NMOS6502, []uint8{0x00, 0x00})
	mem.PokeVector(0xFFFE, 0x0300)
	mem.LoadAt(0x0300, []uint8{0x40}) // RTI
	startS := c.S
	c.Execute(7)
	require.Equal(t, uint8(1), c.I, "state: %s", spew.Sdump(c))
	c.Execute(6) // RTI
	require.Equal(t, startS, c.S, "state: %s", spew.Sdump(c))
	require.Equal(t, uint16(0x0202), c.PC, "state: %s", spew.Sdump(c)) // BRK carries a padding byte
}

func TestExecuteBranchTaken(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0xA9, 0x00, 0xF0, 0x02, 0xA9, 0xFF, 0xA9, 0x11})
	c.Execute(2 + 3)
	require.Equal(t, uint16(0x0206), c.PC) // LDA #0 then BEQ skips the LDA #$FF
}

func TestExecuteStopsOnKIL(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0x02})
	c.Execute(10)
	require.True(t, c.Halted())
	require.Error(t, c.Err())
}

func TestExecuteStopsOnSTP(t *testing.T) {
	c, _ := newExecChip(t, CMOS65C02, []uint8{0xDB})
	c.Execute(10)
	require.True(t, c.Halted())
}

func TestJMPIndirectNMOSPageWrapBug(t *testing.T) {
	// The JMP instruction itself lives at $0400, well away from the $02xx
	// page the pointer wraps within, so the bug's wrap target doesn't
	// collide with the instruction stream being fetched.
	c, mem := newExecChip(t, NMOS6502, nil)
	mem.LoadAt(0x0400, []uint8{0x6C, 0xFF, 0x02})
	c.Reset(0x0400)
	mem.WriteN([]uint8{0x00, 0x80}, 0x02FF)
	mem.WriteN([]uint8{0x99}, 0x0200) // buggy wrap reads high byte from $0200
	c.Execute(5)
	require.Equal(t, uint16(0x9900), c.PC, "state: %s", spew.Sdump(c))
}

func TestJMPIndirectCMOSFixed(t *testing.T) {
	c, mem := newExecChip(t, CMOS65C02, nil)
	mem.LoadAt(0x0400, []uint8{0x6C, 0xFF, 0x02})
	c.Reset(0x0400)
	mem.WriteN([]uint8{0x00, 0x80}, 0x02FF)
	mem.WriteN([]uint8{0x12}, 0x0300)
	c.Execute(5)
	require.Equal(t, uint16(0x1200), c.PC)
}

func TestIRQIgnoredWhenIIsSet(t *testing.T) {
	c, _ := newExecChip(t, NMOS6502, []uint8{0xEA})
	c.I = 1
	pcBefore := c.PC
	c.IRQ()
	require.Equal(t, pcBefore, c.PC)
}

func TestIRQDeliversWhenEnabled(t *testing.T) {
	c, mem := newExecChip(t, NMOS6502, []uint8{0xEA})
	mem.PokeVector(0xFFFE, 0x0400)
	c.I = 0
	c.IRQ()
	require.Equal(t, uint16(0x0400), c.PC)
	require.Equal(t, uint8(1), c.I)
}

func TestNMIAlwaysDelivers(t *testing.T) {
	c, mem := newExecChip(t, NMOS6502, []uint8{0xEA})
	mem.PokeVector(0xFFFA, 0x0500)
	c.I = 1 // NMI is non-maskable
	c.NMI()
	require.Equal(t, uint16(0x0500), c.PC)
}

func TestWAIParksUntilInterrupt(t *testing.T) {
	c, mem := newExecChip(t, CMOS65C02, []uint8{0xCB, 0xEA})
	mem.PokeVector(0xFFFE, 0x0300)
	c.Execute(2)
	require.True(t, c.Waiting())
	c.I = 0
	c.IRQ()
	require.False(t, c.Waiting())
}

func TestOpInfoReportsMnemonicModeAndLength(t *testing.T) {
	mnemonic, mode, length := OpInfo(NMOS6502, 0xA9)
	require.Equal(t, "LDA", mnemonic)
	require.Equal(t, ModeImmediate, mode)
	require.Equal(t, 2, length)
}

func TestOpInfoHuCBlockMove(t *testing.T) {
	mnemonic, mode, length := OpInfo(HuC6280, 0x73)
	require.Equal(t, "TII", mnemonic)
	require.Equal(t, ModeBlockMove, mode)
	require.Equal(t, 7, length)
}
