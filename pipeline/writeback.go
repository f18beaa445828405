package pipeline

import "github.com/kestrelsim/rv32ipipe/regfile"

// WritebackStage is Write Back. It has no output latch: it is the last
// stage in the cursor's rotation and its only effect is the
// register-file write itself.
type WritebackStage struct {
	cursor  *Cursor
	regFile *regfile.RegFile
}

// NewWritebackStage creates a Write Back stage writing into rf.
func NewWritebackStage(cursor *Cursor, rf *regfile.RegFile) *WritebackStage {
	return &WritebackStage{cursor: cursor, regFile: rf}
}

// ShouldStall reports whether the cursor is anywhere but WB.
func (s *WritebackStage) ShouldStall() bool {
	return *s.cursor != CursorWB
}

// Compute writes write_back_value into rd for every instruction class
// that produces a result. Stores and branches carry none of these
// flags and leave the register file untouched; rd==x0 is already a
// no-op in regfile.Write, but the class check is checked here too so a
// stray decode of a zero instruction word never touches rd.
func (s *WritebackStage) Compute(in MemoryAccessRecord) {
	if s.ShouldStall() {
		return
	}

	writes := in.IsALUOp || in.IsLoad || in.IsLUI || in.IsAUIPC || in.IsJAL || in.IsJALR
	if !writes {
		return
	}

	s.regFile.Write(in.Rd, in.WriteBackValue)
}
