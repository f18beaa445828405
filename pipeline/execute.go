package pipeline

import "github.com/kestrelsim/rv32ipipe/insts"

// ExecuteStage is Execute. It runs the ALU, evaluates branch
// conditions, and produces the PC-redirect record IF will pick up at
// the start of its next live tick.
type ExecuteStage struct {
	cursor *Cursor
	alu    *ALU

	workingExec ExecuteRecord
	readyExec   ExecuteRecord

	workingPC PCUpdateRecord
	readyPC   PCUpdateRecord
}

// NewExecuteStage creates an Execute stage.
func NewExecuteStage(cursor *Cursor) *ExecuteStage {
	return &ExecuteStage{cursor: cursor, alu: NewALU()}
}

// ShouldStall reports whether the cursor is anywhere but EXE.
func (s *ExecuteStage) ShouldStall() bool {
	return *s.cursor != CursorEXE
}

// Compute runs the ALU over the Decoded record Decode latched and
// decides whether a taken branch or jump should redirect Fetch.
func (s *ExecuteStage) Compute(in insts.Decoded) {
	if s.ShouldStall() {
		return
	}

	taken := in.IsBranch && branchTaken(&in)

	s.workingExec = ExecuteRecord{
		Decoded:   in,
		ALUResult: s.alu.Result(&in),
	}

	s.workingPC = PCUpdateRecord{
		ShouldUpdate: in.IsJAL || in.IsJALR || taken,
		PCNew:        s.alu.addResult(&in, taken),
	}
}

// LatchNext publishes this tick's working values as ready.
func (s *ExecuteStage) LatchNext() {
	s.readyExec = s.workingExec
	s.readyPC = s.workingPC
}

// ReadyExecute returns the latched Execute record Memory Access will
// consume.
func (s *ExecuteStage) ReadyExecute() ExecuteRecord {
	return s.readyExec
}

// ReadyPCUpdate returns the latched PC-redirect record Fetch will
// consume at the start of its next live tick.
func (s *ExecuteStage) ReadyPCUpdate() PCUpdateRecord {
	return s.readyPC
}
