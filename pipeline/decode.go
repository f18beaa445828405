package pipeline

import (
	"github.com/kestrelsim/rv32ipipe/insts"
	"github.com/kestrelsim/rv32ipipe/regfile"
)

// DecodeStage is Decode. It extracts bit fields and forms the
// immediate via the insts package, then reads the register file to
// fill in Rs1Val/Rs2Val.
type DecodeStage struct {
	cursor  *Cursor
	regFile *regfile.RegFile

	working insts.Decoded
	ready   insts.Decoded
}

// NewDecodeStage creates a Decode stage reading from rf.
func NewDecodeStage(cursor *Cursor, rf *regfile.RegFile) *DecodeStage {
	return &DecodeStage{cursor: cursor, regFile: rf}
}

// ShouldStall reports whether the cursor is anywhere but DE.
func (s *DecodeStage) ShouldStall() bool {
	return *s.cursor != CursorDE
}

// Compute decodes the instruction IF latched and reads its source
// registers. Reading x0 always returns 0 even if a stray write
// occurred, per regfile's hard-wired-zero semantics.
func (s *DecodeStage) Compute(in IFOutput) {
	if s.ShouldStall() {
		return
	}

	d := insts.Decode(in.Instruction, in.PC)
	d.Rs1Val = s.regFile.Read(d.Rs1Addr)
	d.Rs2Val = s.regFile.Read(d.Rs2Addr)

	s.working = *d
}

// LatchNext publishes this tick's working value as ready.
func (s *DecodeStage) LatchNext() {
	s.ready = s.working
}

// Ready returns the latched Decoded record Execute will consume.
func (s *DecodeStage) Ready() insts.Decoded {
	return s.ready
}
