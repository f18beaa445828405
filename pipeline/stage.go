package pipeline

// latchable is the one piece of stage behavior that is uniform across
// the four pipeline stages that have an output latch (Write Back has
// none): publishing working into ready. Each
// stage's Compute takes a different input type (its predecessor's
// ready record), so Compute itself is not abstracted behind this
// interface — the orchestrator calls it directly, stage by stage, in
// the fixed IF/DE/EXE/MEM/WB order.
type latchable interface {
	LatchNext()
}
