package pipeline

import (
	"fmt"

	"github.com/kestrelsim/rv32ipipe/bus"
	"github.com/kestrelsim/rv32ipipe/regfile"
)

// System owns the shared cursor, the bus and register file both stages
// share, and the five stage instances, and ticks them in lock-step.
type System struct {
	cursor Cursor

	bus     *bus.Bus
	regFile *regfile.RegFile

	fetch     *FetchStage
	decode    *DecodeStage
	execute   *ExecuteStage
	memory    *MemoryStage
	writeback *WritebackStage

	latches []latchable

	ticks int
}

// NewSystem builds a System with ROM pre-loaded from romWords and a
// freshly zeroed RAM region and register file.
func NewSystem(romWords []uint32) *System {
	b := bus.New(romWords)
	rf := regfile.New()
	cursor := CursorIF

	s := &System{
		bus:     b,
		regFile: rf,
	}

	s.fetch = NewFetchStage(&s.cursor, b)
	s.decode = NewDecodeStage(&s.cursor, rf)
	s.execute = NewExecuteStage(&s.cursor)
	s.memory = NewMemoryStage(&s.cursor, b)
	s.writeback = NewWritebackStage(&s.cursor, rf)

	s.latches = []latchable{s.fetch, s.decode, s.execute, s.memory}

	s.cursor = cursor
	return s
}

// Tick advances the system by a single stage-step, running each stage's
// Compute in the fixed order IF, DE, EXE, MEM, WB, then latching every
// stage's output and rotating the cursor. The PC-redirect record is
// gathered before any stage computes, so a taken branch or jump this
// tick never races with Fetch reading it.
func (s *System) Tick() error {
	pcRedirect := s.execute.ReadyPCUpdate()

	s.fetch.Compute(pcRedirect)
	s.decode.Compute(s.fetch.Ready())
	s.execute.Compute(s.decode.Ready())
	if err := s.memory.Compute(s.execute.ReadyExecute()); err != nil {
		return fmt.Errorf("pipeline: tick %d: %w", s.ticks, err)
	}
	s.writeback.Compute(s.memory.Ready())

	for _, l := range s.latches {
		l.LatchNext()
	}

	s.cursor = s.cursor.next()
	s.ticks++
	return nil
}

// Run ticks the system for (len(romWords)+1)*5 ticks, a fixed budget
// large enough that every loaded instruction clears all five stages.
// It stops early and returns the first fatal bus fault, if any.
func (s *System) Run(romWordCount int) error {
	budget := (romWordCount + 1) * 5
	for i := 0; i < budget; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Cursor reports which stage is live, mainly for diagnostics and tests.
func (s *System) Cursor() Cursor {
	return s.cursor
}

// Bus returns the system's memory bus.
func (s *System) Bus() *bus.Bus {
	return s.bus
}

// RegisterFile returns the system's register file.
func (s *System) RegisterFile() *regfile.RegFile {
	return s.regFile
}

// RegisterDump returns a snapshot of all 32 registers, for display or
// test assertions.
func (s *System) RegisterDump() [regfile.NumRegisters]uint32 {
	return s.regFile.Snapshot()
}

// MemoryWindow returns count words starting at base, for display or
// test assertions.
func (s *System) MemoryWindow(base uint32, count int) []uint32 {
	return s.bus.ReadWindow(base, count)
}
