package pipeline

import "github.com/kestrelsim/rv32ipipe/insts"

// ALU implements the RV32I integer arithmetic/logic table Execute
// selects by funct3. It is a pure, stateless component — unlike a
// register-file-backed ALU, all of its operands already live on the
// Decoded record Decode produced.
type ALU struct{}

// NewALU constructs an ALU.
func NewALU() *ALU {
	return &ALU{}
}

// operandSelect picks the right-hand ALU operand: the Rs2 value for a
// register-register op, or the raw immediate field for a
// register-immediate op. Shared by both Result and addResult below.
func operandSelect(d *insts.Decoded) (isRegisterOp, isAlternate bool, rightOperand uint32) {
	isRegisterOp = (d.Opcode>>5)&1 == 1 && !d.IsJALR
	isAlternate = (d.Imm11_0>>10)&1 == 1

	if isRegisterOp {
		rightOperand = d.Rs2Val
	} else {
		rightOperand = d.Imm11_0
	}
	return
}

// Result computes the ALU result from the funct3-keyed operation table.
func (a *ALU) Result(d *insts.Decoded) uint32 {
	isRegisterOp, isAlternate, rightOperand := operandSelect(d)

	switch d.Funct3 {
	case 0b000: // ADD / SUB
		if isRegisterOp {
			if isAlternate {
				return d.Rs1Val - d.Rs2Val
			}
			return d.Rs1Val + d.Rs2Val
		}
		return uint32(int32(d.Rs1Val) + d.Imm32)

	case 0b001: // SLL
		shift := rightOperand & 0x1F
		if !isRegisterOp {
			shift = d.Shamt & 0x1F
		}
		return d.Rs1Val << shift

	case 0b010: // SLT
		if int32(d.Rs1Val) < int32(rightOperand) {
			return 1
		}
		return 0

	case 0b011: // SLTU
		if d.Rs1Val < rightOperand {
			return 1
		}
		return 0

	case 0b100: // XOR
		return d.Rs1Val ^ rightOperand

	case 0b101: // SRL / SRA
		shift := rightOperand & 0x1F
		if !isRegisterOp {
			shift = d.Shamt & 0x1F
		}
		if isAlternate {
			return uint32(int32(d.Rs1Val) >> shift)
		}
		return d.Rs1Val >> shift

	case 0b110: // OR
		return d.Rs1Val | rightOperand

	case 0b111: // AND
		return d.Rs1Val & rightOperand

	default:
		return 0
	}
}

// addResult computes the control-flow effective address: the JALR
// target, the JAL/taken-branch target, or (for every other
// instruction) the same ADD/SUB formula the ALU uses for funct3 000 —
// reused downstream only when a jump or taken branch makes it the next
// PC.
func (a *ALU) addResult(d *insts.Decoded, branchTaken bool) uint32 {
	if d.IsJALR {
		return (d.Rs1Val + uint32(d.Imm32)) &^ 1
	}
	if d.IsJAL || (d.IsBranch && branchTaken) {
		return uint32(int32(d.PC) + d.Imm32)
	}

	isRegisterOp, isAlternate, _ := operandSelect(d)
	if isRegisterOp {
		if isAlternate {
			return d.Rs1Val - d.Rs2Val
		}
		return d.Rs1Val + d.Rs2Val
	}
	return uint32(int32(d.Rs1Val) + d.Imm32)
}

// branchTaken evaluates the funct3-selected branch condition; only
// meaningful when d.IsBranch.
func branchTaken(d *insts.Decoded) bool {
	switch d.Funct3 {
	case 0b000: // BEQ
		return d.Rs1Val == d.Rs2Val
	case 0b001: // BNE
		return d.Rs1Val != d.Rs2Val
	case 0b100: // BLT
		return int32(d.Rs1Val) < int32(d.Rs2Val)
	case 0b101: // BGE
		return int32(d.Rs1Val) >= int32(d.Rs2Val)
	case 0b110: // BLTU
		return d.Rs1Val < d.Rs2Val
	case 0b111: // BGEU
		return d.Rs1Val >= d.Rs2Val
	default:
		return false
	}
}
