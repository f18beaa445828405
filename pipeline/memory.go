package pipeline

import "github.com/kestrelsim/rv32ipipe/bus"

// MemoryStage is Memory Access. It recomputes the load/store effective
// address independently of EXE's add path — the same value, computed
// a second time — and forms the write-back value for every instruction
// class.
type MemoryStage struct {
	cursor *Cursor
	bus    *bus.Bus

	working MemoryAccessRecord
	ready   MemoryAccessRecord
}

// NewMemoryStage creates a Memory Access stage backed by b.
func NewMemoryStage(cursor *Cursor, b *bus.Bus) *MemoryStage {
	return &MemoryStage{cursor: cursor, bus: b}
}

// ShouldStall reports whether the cursor is anywhere but MEM.
func (s *MemoryStage) ShouldStall() bool {
	return *s.cursor != CursorMEM
}

// Compute performs the store or load (if any) and forms the
// write-back value Write Back will consult. It returns a non-nil error
// only for a misaligned halfword or word access, or for a load or store
// whose funct3 low bits select no valid width; either is fatal.
func (s *MemoryStage) Compute(in ExecuteRecord) error {
	if s.ShouldStall() {
		return nil
	}

	d := &in.Decoded
	rec := MemoryAccessRecord{
		Rd:      d.Rd,
		IsALUOp: d.IsALUOp,
		IsLoad:  d.IsLoad,
		IsLUI:   d.IsLUI,
		IsAUIPC: d.IsAUIPC,
		IsJAL:   d.IsJAL,
		IsJALR:  d.IsJALR,
	}

	addr := uint32(int32(d.Rs1Val) + d.Imm32)
	width := bus.Width(d.Funct3 & 0b011)

	switch {
	case d.IsStore:
		if err := s.bus.Write(addr, d.Rs2Val, width); err != nil {
			return err
		}

	case d.IsLoad:
		val, err := s.bus.Read(addr, width)
		if err != nil {
			return err
		}
		if d.Funct3&0b100 == 0 {
			rec.WriteBackValue = uint32(signExtendWidth(val, width))
		} else {
			rec.WriteBackValue = val
		}

	case d.IsLUI:
		rec.WriteBackValue = uint32(d.Imm32)

	case d.IsAUIPC:
		rec.WriteBackValue = uint32(int32(d.PC) + d.Imm32)

	case d.IsJAL, d.IsJALR:
		rec.WriteBackValue = d.PCPlusFour

	default:
		rec.WriteBackValue = in.ALUResult
	}

	s.working = rec
	return nil
}

// LatchNext publishes this tick's working value as ready.
func (s *MemoryStage) LatchNext() {
	s.ready = s.working
}

// Ready returns the latched MemoryAccess record Write Back will
// consume.
func (s *MemoryStage) Ready() MemoryAccessRecord {
	return s.ready
}

// signExtendWidth sign-extends a sub-word load value from the high bit
// of its width.
func signExtendWidth(v uint32, width bus.Width) int32 {
	switch width {
	case bus.Byte:
		return int32(int8(v))
	case bus.HalfWord:
		return int32(int16(v))
	default:
		return int32(v)
	}
}
