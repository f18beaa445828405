package pipeline

import "github.com/kestrelsim/rv32ipipe/bus"

// FetchStage is Instruction Fetch. It holds the address of its next
// fetch directly (not as a working/ready pair, since the PC it
// advances is its own internal bookkeeping, not an inter-stage value)
// alongside the working/ready pair for its published output.
type FetchStage struct {
	cursor *Cursor
	bus    *bus.Bus

	pc uint32

	working IFOutput
	ready   IFOutput
}

// NewFetchStage creates a Fetch stage whose first fetch will be at the
// ROM base address, the emulator's fixed entry point.
func NewFetchStage(cursor *Cursor, b *bus.Bus) *FetchStage {
	return &FetchStage{
		cursor: cursor,
		bus:    b,
		pc:     bus.ROMBase,
	}
}

// ShouldStall reports whether the cursor is anywhere but IF.
func (s *FetchStage) ShouldStall() bool {
	return *s.cursor != CursorIF
}

// Compute fetches one instruction word at the live PC. pcRedirect is
// EXE's ready PC-redirect record as of the start of this tick, gathered
// by the orchestrator before any stage computes.
func (s *FetchStage) Compute(pcRedirect PCUpdateRecord) {
	if s.ShouldStall() {
		return
	}

	if pcRedirect.ShouldUpdate {
		s.pc = pcRedirect.PCNew
	}

	// A fetch outside any region reads as zero, which Decode treats as
	// a silent no-op; IF never faults.
	word, _ := s.bus.Read(s.pc, bus.Word)

	s.working = IFOutput{
		PC:          s.pc,
		PCPlusFour:  s.pc + 4,
		Instruction: word,
	}

	s.pc = s.working.PCPlusFour
}

// LatchNext publishes this tick's working value as ready.
func (s *FetchStage) LatchNext() {
	s.ready = s.working
}

// Ready returns the latched output Decode will read.
func (s *FetchStage) Ready() IFOutput {
	return s.ready
}
