// Package memory defines the host-provided memory interface a 65xx core
// calls into, plus a flat reference implementation used by the core's
// own tests and by cmd/m65xxtrace.
//
// Unlike a typical byte-at-a-time bus interface, the core reads in two
// sizes: single bytes for most fetches and PC_MAX_FETCH-byte lookahead
// reads at the start of each instruction (4 bytes on 6502/65C02/R65C02,
// 8 on HuC6280), so hosts must tolerate reads that run past the logical
// end of the instruction at PC into whatever filler the host wants to
// return for unmapped space.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Memory is the interface the core calls into for every address outside
// the caller-owned zero-page/stack region.
type Memory interface {
	// ReadN fills dst from addr. len(dst) is always 1, 2, or the variant's
	// PC_MAX_FETCH; the core may read up to PC_MAX_FETCH-1 bytes past the
	// end of the instruction actually executed.
	ReadN(dst []uint8, addr uint16)
	// WriteN writes src to addr. len(src) is always 1 in the defined core.
	WriteN(src []uint8, addr uint16)
	// PowerOn resets the backing store to its power-on state.
	PowerOn()
}

// Flat implements Memory as a single contiguous 64KB address space. It's
// the reference implementation used by the core's test harness and by
// cmd/m65xxtrace; a real host embedding the core would typically
// implement Memory itself to decode RAM/ROM/MMIO regions (out of scope
// for this module, see spec.md §1).
type Flat struct {
	mem [65536]uint8
	// Fill is the byte returned for addresses beyond what's explicitly
	// loaded by a caller; PowerOn re-fills the whole space with it.
	Fill uint8
}

// NewFlat returns a power-on-reset 64KB flat address space.
func NewFlat() *Flat {
	f := &Flat{}
	f.PowerOn()
	return f
}

// ReadN implements Memory. Addresses wrap modulo 65536 so a lookahead
// read starting near 0xFFFF never indexes out of bounds.
func (f *Flat) ReadN(dst []uint8, addr uint16) {
	for i := range dst {
		dst[i] = f.mem[uint16(int(addr)+i)]
	}
}

// WriteN implements Memory.
func (f *Flat) WriteN(src []uint8, addr uint16) {
	for i, b := range src {
		f.mem[uint16(int(addr)+i)] = b
	}
}

// PowerOn implements Memory, filling the address space with Fill (0x00
// by default, matching most functional-test ROM conventions for
// unmapped-space filler bytes).
func (f *Flat) PowerOn() {
	for i := range f.mem {
		f.mem[i] = f.Fill
	}
}

// LoadAt copies img into the address space starting at addr, wrapping
// modulo 65536 as ReadN/WriteN do.
func (f *Flat) LoadAt(addr uint16, img []uint8) {
	f.WriteN(img, addr)
}

// PokeVector writes a 16 bit little-endian vector (PC, IRQ, NMI, reset)
// at addr, the shape every test fixture needs repeatedly.
func (f *Flat) PokeVector(addr uint16, val uint16) {
	f.WriteN([]uint8{uint8(val & 0xFF), uint8(val >> 8)}, addr)
}

// ZeroPageStack allocates and randomizes the 512-byte caller-owned
// region (zero page + stack page) that cpu.New requires, matching the
// power-on randomization the teacher's memory.Bank.PowerOn performs for
// RAM it owns.
func ZeroPageStack() []uint8 {
	b := make([]uint8, 512)
	rand.Seed(time.Now().UnixNano())
	for i := range b {
		b[i] = uint8(rand.Intn(256))
	}
	return b
}

// RequireZeroPageStack validates the size precondition cpu.New enforces,
// returning an error instead of panicking so callers can surface a
// useful message.
func RequireZeroPageStack(b []uint8) error {
	if len(b) != 512 {
		return fmt.Errorf("zero-page/stack region must be exactly 512 bytes, got %d", len(b))
	}
	return nil
}
