// Package cpu implements the decode/dispatch core for the 65xx family:
// NMOS 6502 (with undocumented opcodes and the JMP indirect page-wrap
// bug), 65C02, Rockwell R65C02, and HuC6280. See SPEC_FULL.md for the
// full component breakdown; this file covers variant-independent CPU
// state, construction, and reset (spec.md §3, §4.2, §6).
package cpu

import (
	"fmt"

	"github.com/sixfiveoh/m65xx/irq"
	"github.com/sixfiveoh/m65xx/memory"
)

// Flag bit positions, packed order N V T B D I Z C (MSB to LSB), per
// original_source/cpu65.c's pack_flags/unpack_flags.
const (
	flagN = uint8(0x80) // Negative
	flagV = uint8(0x40) // Overflow
	flagT = uint8(0x20) // Memory-transfer (HuC6280 only; fixed 1 elsewhere)
	flagB = uint8(0x10) // Break (fixed 1 outside a push, except HuC)
	flagD = uint8(0x08) // Decimal
	flagI = uint8(0x04) // Interrupt disable
	flagZ = uint8(0x02) // Zero
	flagC = uint8(0x01) // Carry
)

// Interrupt vector slot addresses, relative to a variant's intVecBase.
const (
	NMIVectorOffset   = vecNMIOffset
	ResetVectorOffset = vecRESETOffset
	IRQVectorOffset   = vecIRQOffset
)

// runState is the CPU's observable state machine (spec.md §4.4: Running,
// Halted, Waiting-for-interrupt).
type runState int

const (
	stateRunning runState = iota
	stateHalted
	stateWaiting
)

// InvalidCPUState reports an internal precondition failure — an
// unreachable addressing mode for a given handler, or a variant/opcode
// combination that should never occur with a correctly built dispatch
// table. Per spec.md §7 this is a fatal assertion, not a recoverable error.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// HaltOpcode reports that a KIL (NMOS) or STP (CMOS/HuC) opcode executed,
// transitioning the CPU to Halted.
type HaltOpcode struct {
	Opcode uint8
}

func (e HaltOpcode) Error() string {
	return fmt.Sprintf("HALT(0x%.2X) executed", e.Opcode)
}

// Tracer receives one rendered trace line per retired instruction. Purely
// a diagnostic convenience (spec.md §6); nil disables tracing.
type Tracer func(line string)

// Chip is a 65xx core of a fixed Variant, bound to a caller-owned
// zero-page/stack region and a host Memory for everything else.
type Chip struct {
	A, X, Y uint8
	S       uint8
	PC      uint16

	// Flags held individually as 0/1 bytes on the hot path (spec.md Design
	// Notes: "keep the per-flag byte representation for hot-path writes").
	N, V, T, B, D, I, Z, C uint8

	variant Variant
	info    variantInfo

	mem memory.Memory
	// zp is the caller-owned 512-byte region: zp[0:256] is zero page,
	// zp[256:512] is the stack page. Non-owning: the Chip never resizes
	// or replaces the backing array.
	zp []uint8

	state      runState
	haltOpcode uint8

	// irq/nmi/rdy are optional host-installed interrupt sources, polled
	// once per Execute iteration between instructions (spec.md §4.5).
	// Nil unless set via Config.
	irq irq.Sender
	nmi irq.Sender
	rdy irq.Sender

	// fetchBuf is the instruction-local lookahead buffer Execute reads
	// PC_MAX_FETCH bytes into at the start of every instruction; sized to
	// HuC6280's 8-byte fetch width and reused every iteration so Execute
	// never allocates (spec.md §5 resource constraints).
	fetchBuf [8]uint8
	// pendingErr is set by KIL/STP and surfaced to the Execute caller.
	pendingErr error

	// UserData is an opaque slot for host-specific context; the core never
	// reads or writes it.
	UserData any
	// Trace, if non-nil, is called once per retired instruction.
	Trace Tracer
}

// Err returns the error (if any) raised by the KIL/STP instruction that
// halted the CPU. Execute never clears it; only Reset does.
func (c *Chip) Err() error { return c.pendingErr }

// New constructs a Chip in power-on state: zeroed registers, S=0xFF, T/B
// at their variant-defined initial values, PC loaded from the reset
// vector. zp must be exactly 512 bytes (the caller-owned zero-page+stack
// region) and is retained for the Chip's lifetime, matching the teacher's
// Init(zeropage_base) contract.
func New(cfg Config, zp []uint8, mem memory.Memory) (*Chip, error) {
	if err := memory.RequireZeroPageStack(zp); err != nil {
		return nil, err
	}
	if cfg.Variant <= variantUnimplemented || cfg.Variant >= variantMax {
		return nil, InvalidCPUState{Reason: fmt.Sprintf("variant %d is invalid", cfg.Variant)}
	}
	c := &Chip{
		variant: cfg.Variant,
		info:    cfg.Variant.info(),
		mem:     mem,
		zp:      zp,
		irq:     cfg.Irq,
		nmi:     cfg.Nmi,
		rdy:     cfg.Rdy,
	}
	if cfg.Variant == NMOSRicoh {
		c.info.bcdCapable = false
	} else {
		c.info.bcdCapable = c.info.bcdCapable && cfg.BCD
	}
	c.Reset(0)
	return c, nil
}

func (c *Chip) powerOnRegisters() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFF
	c.N, c.V, c.D, c.I, c.Z, c.C = 0, 0, 0, 0, 0, 0
	c.T = c.info.tInit
	c.B = c.info.bInit
}

// Reset reinitializes the CPU as New does and loads PC from initialPC if
// non-zero, else from the variant's reset vector. S is set to 0xFF rather
// than decremented by 3 as real silicon does on a reset line pulse, since
// SPEC_FULL models Reset as a single construction-time/host-invoked
// operation rather than a ticked sequence (see cpu65_reset in
// original_source/cpu65.c, which does the same simplification).
func (c *Chip) Reset(initialPC uint16) {
	c.powerOnRegisters()
	c.I = 1
	c.state = stateRunning
	c.haltOpcode = 0
	c.pendingErr = nil
	if initialPC != 0 {
		c.PC = initialPC
		return
	}
	c.loadPCFromVector(c.info.intVecBase + ResetVectorOffset)
}

func (c *Chip) loadPCFromVector(addr uint16) {
	var buf [2]uint8
	c.mem.ReadN(buf[:], addr)
	c.PC = uint16(buf[0]) | uint16(buf[1])<<8
}

// Variant returns the CPU's configured variant.
func (c *Chip) Variant() Variant { return c.variant }

// Halted reports whether a KIL/STP opcode has stopped the CPU; only a
// Reset clears this.
func (c *Chip) Halted() bool { return c.state == stateHalted }

// Waiting reports whether a WAI instruction is parked waiting for an
// interrupt.
func (c *Chip) Waiting() bool { return c.state == stateWaiting }

// packFlags produces the packed status byte (N V T B D I Z C) with the
// given value substituted for the B bit: PHP/BRK always push breakBit=1,
// hardware IRQ/NMI always push breakBit=0 (spec.md §4.4).
func (c *Chip) packFlags(breakBit uint8) uint8 {
	var p uint8
	p |= c.N << 7
	p |= c.V << 6
	p |= c.T << 5
	p |= breakBit << 4
	p |= c.D << 3
	p |= c.I << 2
	p |= c.Z << 1
	p |= c.C
	return p
}

// unpackFlags applies a popped status byte through the variant's PLP
// mask, so non-HuC variants keep the synthetic T/B bits pinned at 1
// regardless of what was pushed.
func (c *Chip) unpackFlags(v uint8) {
	v &= c.info.plpMask
	c.N = bit(v, flagN)
	c.V = bit(v, flagV)
	if c.info.hasHuCExtras {
		c.T = bit(v, flagT)
		c.B = bit(v, flagB)
	} else {
		c.T = 1
		c.B = 1
	}
	c.D = bit(v, flagD)
	c.I = bit(v, flagI)
	c.Z = bit(v, flagZ)
	c.C = bit(v, flagC)
}

func bit(v, mask uint8) uint8 {
	if v&mask != 0 {
		return 1
	}
	return 0
}

// setZN sets Z/N from the given 8 bit result, the SET_ZN primitive named
// throughout spec.md §4.4.
func (c *Chip) setZN(v uint8) {
	c.Z = 0
	if v == 0 {
		c.Z = 1
	}
	c.N = bit(v, 0x80)
}

// setCarry sets C from a 9+ bit intermediate result (ADC/shift carries can
// be 9 bits; BCD overflow in ADC can make it a 10th bit, still >= 0x100).
func (c *Chip) setCarry(res uint16) {
	c.C = 0
	if res >= 0x100 {
		c.C = 1
	}
}

// setOverflow sets V per the two's-complement sign-change rule (spec.md §4.4).
func (c *Chip) setOverflow(reg, arg, res uint8) {
	c.V = 0
	if (reg^res)&(arg^res)&0x80 != 0 {
		c.V = 1
	}
}

// pushStack pushes val and decrements S, wrapping modulo 256 within the
// stack page (spec.md §3 invariant).
func (c *Chip) pushStack(val uint8) {
	c.zp[256+int(c.S)] = val
	c.S--
}

// popStack increments S and reads, wrapping modulo 256.
func (c *Chip) popStack() uint8 {
	c.S++
	return c.zp[256+int(c.S)]
}

// read8 reads a single byte, routing zero page/stack through the direct
// view and everything else through the host Memory (spec.md §4.2).
func (c *Chip) read8(addr uint16) uint8 {
	if addr < 0x0200 {
		return c.zp[addr]
	}
	var buf [1]uint8
	c.mem.ReadN(buf[:], addr)
	return buf[0]
}

// write8 is the write counterpart to read8.
func (c *Chip) write8(addr uint16, val uint8) {
	if addr < 0x0200 {
		c.zp[addr] = val
		return
	}
	c.mem.WriteN([]uint8{val}, addr)
}
