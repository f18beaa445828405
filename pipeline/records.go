package pipeline

import "github.com/kestrelsim/rv32ipipe/insts"

// IFOutput is Instruction Fetch's output record: the PC an instruction
// was fetched at, the next sequential PC, and the raw instruction word.
type IFOutput struct {
	PC          uint32
	PCPlusFour  uint32
	Instruction uint32
}

// PCUpdateRecord is EXE's back-edge to IF: written by Execute, read by
// Fetch at the start of the next IF tick.
type PCUpdateRecord struct {
	ShouldUpdate bool
	PCNew        uint32
}

// ExecuteRecord is Execute's output record: the decoded instruction
// passed through, plus the ALU result.
type ExecuteRecord struct {
	Decoded   insts.Decoded
	ALUResult uint32
}

// MemoryAccessRecord is Memory Access's output record: the destination
// register and write-back-relevant class tags, plus the value Write
// Back will commit.
type MemoryAccessRecord struct {
	Rd uint8

	IsALUOp bool
	IsLoad  bool
	IsLUI   bool
	IsAUIPC bool
	IsJAL   bool
	IsJALR  bool

	WriteBackValue uint32
}
