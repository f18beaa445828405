// Package insts implements RV32I bit-field extraction, instruction
// classification, and sign-extended immediate formation. It has no
// notion of registers or memory; the pipeline's Decode stage reads
// rs1/rs2 out of the register file and attaches them to the Decoded
// record this package produces.
package insts

import (
	"fmt"
	"os"
)

// Opcode bit patterns for the instruction classes this core handles.
const (
	opcodeALUMask    = 0b101_1111
	opcodeALUPattern = 0b001_0011
	opcodeStore      = 0b010_0011
	opcodeLoad       = 0b000_0011
	opcodeLUI        = 0b011_0111
	opcodeAUIPC      = 0b001_0111
	opcodeJAL        = 0b110_1111
	opcodeJALR       = 0b110_0111
	opcodeBranch     = 0b110_0011
)

// Decoded is the fully populated record the Decode stage hands to
// Execute: raw bit fields, the format-appropriate sign-extended
// immediate, the instruction's own PC and PC+4, and the class tags
// downstream stages switch on.
type Decoded struct {
	Instruction uint32
	PC          uint32
	PCPlusFour  uint32

	Opcode uint32
	Rd     uint8
	Funct3 uint32
	Funct7 uint32

	Rs1Addr uint8
	Rs2Addr uint8 // also the shamt field for immediate shifts
	Shamt   uint32
	Imm11_0 uint32

	// Rs1Val and Rs2Val are populated by the Decode stage after register
	// reads; Decode (this package) leaves them zero.
	Rs1Val uint32
	Rs2Val uint32

	Imm32 int32

	IsALUOp  bool
	IsStore  bool
	IsLoad   bool
	IsLUI    bool
	IsAUIPC  bool
	IsJAL    bool
	IsJALR   bool
	IsBranch bool
}

// Decode extracts fields, classifies, and forms the immediate for one
// 32-bit instruction word fetched at pc. A zero instruction word decodes
// as a silent no-op: no class flag is set and the immediate is zero. A
// non-zero word matching no known class also produces a zero immediate,
// but additionally prints a diagnostic.
func Decode(instruction, pc uint32) *Decoded {
	d := &Decoded{
		Instruction: instruction,
		PC:          pc,
		PCPlusFour:  pc + 4,

		Opcode:  instruction & 0x7F,
		Rd:      uint8((instruction >> 7) & 0x1F),
		Funct3:  (instruction >> 12) & 0x7,
		Rs1Addr: uint8((instruction >> 15) & 0x1F),
		Rs2Addr: uint8((instruction >> 20) & 0x1F),
		Imm11_0: (instruction >> 20) & 0xFFF,
		Funct7:  (instruction >> 25) & 0x7F,
	}
	d.Shamt = uint32(d.Rs2Addr)

	d.IsALUOp = d.Opcode&opcodeALUMask == opcodeALUPattern
	d.IsStore = d.Opcode == opcodeStore
	d.IsLoad = d.Opcode == opcodeLoad
	d.IsLUI = d.Opcode == opcodeLUI
	d.IsAUIPC = d.Opcode == opcodeAUIPC
	d.IsJAL = d.Opcode == opcodeJAL
	d.IsJALR = d.Opcode == opcodeJALR
	d.IsBranch = d.Opcode == opcodeBranch

	switch {
	case d.IsLUI, d.IsAUIPC:
		d.Imm32 = formUImm(instruction)
	case d.IsALUOp, d.IsLoad, d.IsJALR:
		d.Imm32 = formIImm(instruction)
	case d.IsStore:
		d.Imm32 = formSImm(instruction)
	case d.IsBranch:
		d.Imm32 = formBImm(instruction)
	case d.IsJAL:
		d.Imm32 = formJImm(instruction)
	case instruction != 0:
		fmt.Fprintf(os.Stderr, "insts: unhandled opcode 0b%07b at pc=0x%08X\n", d.Opcode, pc)
	}

	return d
}

// formUImm forms the U-type immediate: the top 20 bits of the
// instruction, zero in the low 12.
func formUImm(instruction uint32) int32 {
	return int32(instruction &^ 0xFFF)
}

// formIImm sign-extends the 12-bit I-type immediate field [31:20].
func formIImm(instruction uint32) int32 {
	return int32(instruction) >> 20
}

// formSImm reassembles the S-type immediate from funct7||rd and
// sign-extends from bit 11.
func formSImm(instruction uint32) int32 {
	imm := ((instruction >> 25) << 5) | ((instruction >> 7) & 0x1F)
	return signExtend(imm, 12)
}

// formBImm reassembles the B-type immediate from
// {instr[31], instr[7], instr[30:25], instr[11:8]}, forces the low bit
// to 0, and sign-extends from bit 12.
func formBImm(instruction uint32) int32 {
	bit12 := (instruction >> 31) & 0x1
	bit11 := (instruction >> 7) & 0x1
	bits10_5 := (instruction >> 25) & 0x3F
	bits4_1 := (instruction >> 8) & 0xF

	imm := (bit12 << 12) | (bit11 << 11) | (bits10_5 << 5) | (bits4_1 << 1)
	return signExtend(imm, 13)
}

// formJImm reassembles the J-type immediate from
// {instr[31], instr[19:12], instr[20], instr[30:21]}, forces the low bit
// to 0, and sign-extends from bit 20.
func formJImm(instruction uint32) int32 {
	bit20 := (instruction >> 31) & 0x1
	bits19_12 := (instruction >> 12) & 0xFF
	bit11 := (instruction >> 20) & 0x1
	bits10_1 := (instruction >> 21) & 0x3FF

	imm := (bit20 << 20) | (bits19_12 << 12) | (bit11 << 11) | (bits10_1 << 1)
	return signExtend(imm, 21)
}

// signExtend treats the low `bits` bits of v as a two's-complement
// integer of that width and sign-extends it to 32 bits.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
