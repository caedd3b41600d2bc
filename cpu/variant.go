package cpu

import "github.com/sixfiveoh/m65xx/irq"

// Variant is an enumeration of the supported 65xx family members.
type Variant int

const (
	variantUnimplemented Variant = iota // Start of valid variant enumerations.

	// NMOS6502 is the original NMOS 6502 including its undocumented
	// opcodes and the JMP ($xxFF) indirect page-wrap bug.
	NMOS6502
	// NMOSRicoh is the Ricoh 2A03/2A07 used in the NES: identical to
	// NMOS6502 except BCD mode is unimplemented in hardware.
	NMOSRicoh
	// CMOS65C02 is the WDC 65C02: documented NOPs for NMOS illegal
	// opcodes, STZ/PHX/PHY/PLX/PLY/TRB/TSB/BRA, fixed JMP indirect bug,
	// decimal mode clears on interrupt entry.
	CMOS65C02
	// R65C02 is the Rockwell 65C02: CMOS65C02 plus the per-bit
	// BBRn/BBSn/RMBn/SMBn instructions.
	R65C02
	// HuC6280 is the Hudson Soft CPU used in the PC Engine/TurboGrafx-16:
	// R65C02 base plus the T (memory-transfer) flag, block-move
	// instructions, multi-byte immediate addressing modes, and SAX/SAY/SXY/SET.
	HuC6280

	variantMax // End of variant enumerations.
)

// Config selects a variant and whether BCD arithmetic is enabled. BCD is
// disabled for NMOSRicoh automatically regardless of this field; for the
// other variants it lets a caller model e.g. a BCD-disabled NMOS clone.
type Config struct {
	Variant Variant
	// BCD, when true, enables decimal-mode ADC/SBC fixups. Ignored (always
	// false) for NMOSRicoh.
	BCD bool

	// Irq is an optional IRQ source polled once per Execute iteration.
	Irq irq.Sender
	// Nmi is an optional NMI source polled once per Execute iteration; an
	// NMI is delivered on every iteration in which it reads raised (no
	// edge latch is kept).
	Nmi irq.Sender
	// Rdy is an optional RDY source; while raised, Execute holds the PC
	// and does not retire further instructions.
	Rdy irq.Sender
}

// variantInfo holds the few places variant behavior actually diverges, per
// spec.md Design Notes ("a small runtime tag checked at the few sites that
// differ"). Built once per Variant rather than per Chip.
type variantInfo struct {
	// fetchWidth is PC_MAX_FETCH: the number of bytes read at once at the
	// start of every instruction.
	fetchWidth int
	// tInit/bInit are the power-on/reset values of the T and B flags.
	tInit, bInit uint8
	// intVecBase is the low address of the three interrupt vectors
	// (NMI, RESET, IRQ/BRK), spaced 2 bytes apart, in that order; the
	// offsets below are the same for every variant.
	intVecBase uint16
	// plpMask is ANDed with the popped byte before unpacking flags on PLP/RTI.
	plpMask uint8
	// intMask is ANDed against the flags byte on interrupt entry (BRK/IRQ/NMI)
	// to determine which of D/T get cleared.
	intMask uint8
	// branchPenalty is the unconditional per-taken-branch cycle cost before
	// any page-cross penalty.
	branchPenalty int
	// pcp, if true, means index/branch page crossings cost an extra cycle
	// by default for this variant.
	pcp bool
	// cmosNZTiming selects whether BCD ADC/SBC set Z/N from the final
	// (true) decimal result rather than the pre-adjustment binary one.
	cmosNZTiming bool
	// bcdCapable is false only for NMOSRicoh.
	bcdCapable bool
	// hasRockwellBits enables BBRn/BBSn/RMBn/SMBn.
	hasRockwellBits bool
	// hasHuCExtras enables T flag semantics, SAX/SAY/SXY/SET, block-move,
	// and the multi-byte immediate addressing modes.
	hasHuCExtras bool
	// fixedJMPBug selects the NMOS JMP ($xxFF) page-wrap bug.
	fixedJMPBug bool
}

// Interrupt vector order/offsets relative to intVecBase, per spec.md §6/§4.1.
const (
	vecNMIOffset   = 0
	vecRESETOffset = 2
	vecIRQOffset   = 4

	vectorBase6502 = uint16(0xFFFA) // NMI at FFFA, RESET FFFC, IRQ/BRK FFFE.
	vectorBaseHuC  = uint16(0xFFF6) // HuC6280 shifts the same layout down by 4.
)

var variantTable = map[Variant]variantInfo{
	NMOS6502: {
		fetchWidth: 4, tInit: 1, bInit: 1, intVecBase: vectorBase6502,
		plpMask: 0xFF &^ (flagT | flagB), intMask: 0xFF, branchPenalty: 1,
		pcp: true, cmosNZTiming: false, bcdCapable: true, fixedJMPBug: true,
	},
	NMOSRicoh: {
		fetchWidth: 4, tInit: 1, bInit: 1, intVecBase: vectorBase6502,
		plpMask: 0xFF &^ (flagT | flagB), intMask: 0xFF, branchPenalty: 1,
		pcp: true, cmosNZTiming: false, bcdCapable: false, fixedJMPBug: true,
	},
	CMOS65C02: {
		fetchWidth: 4, tInit: 1, bInit: 1, intVecBase: vectorBase6502,
		plpMask: 0xFF &^ (flagT | flagB), intMask: 0xFF &^ flagD, branchPenalty: 1,
		pcp: true, cmosNZTiming: true, bcdCapable: true, fixedJMPBug: false,
	},
	R65C02: {
		fetchWidth: 4, tInit: 1, bInit: 1, intVecBase: vectorBase6502,
		plpMask: 0xFF &^ (flagT | flagB), intMask: 0xFF &^ flagD, branchPenalty: 1,
		pcp: true, cmosNZTiming: true, bcdCapable: true, fixedJMPBug: false,
		hasRockwellBits: true,
	},
	HuC6280: {
		fetchWidth: 8, tInit: 0, bInit: 0, intVecBase: vectorBaseHuC,
		plpMask: 0xFF, intMask: 0xFF &^ (flagD | flagT), branchPenalty: 2,
		pcp: true, cmosNZTiming: true, bcdCapable: true, fixedJMPBug: false,
		hasRockwellBits: true, hasHuCExtras: true,
	},
}

func (v Variant) info() variantInfo {
	vi, ok := variantTable[v]
	if !ok {
		panic(InvalidCPUState{Reason: "unknown variant"})
	}
	return vi
}

// String implements fmt.Stringer for Variant.
func (v Variant) String() string {
	switch v {
	case NMOS6502:
		return "NMOS6502"
	case NMOSRicoh:
		return "NMOSRicoh"
	case CMOS65C02:
		return "CMOS65C02"
	case R65C02:
		return "R65C02"
	case HuC6280:
		return "HuC6280"
	default:
		return "UNKNOWN"
	}
}
