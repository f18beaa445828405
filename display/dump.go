// Package display formats register and memory state for the command
// line, matching the register-dump / memory-dump layout in
// _examples/original_source/src/main.rs.
package display

import (
	"fmt"
	"strings"

	"github.com/kestrelsim/rv32ipipe/regfile"
)

// FormatRegisters renders all 32 registers, one per line, as
// "xN: 0x%08x".
func FormatRegisters(regs [regfile.NumRegisters]uint32) string {
	var b strings.Builder
	b.WriteString("Register dump:\n")
	for i, v := range regs {
		fmt.Fprintf(&b, "x%d: 0x%08x\n", i, v)
	}
	return b.String()
}

// FormatMemoryWords renders words four to a line, each line labeled
// with the byte address of its first word starting at base.
func FormatMemoryWords(words []uint32, base uint32) string {
	var b strings.Builder
	b.WriteString("Memory dump:\n")

	for i := 0; i+3 < len(words); i += 4 {
		addr := base + uint32(i)*4
		fmt.Fprintf(&b, "0x%08x: 0x%08x 0x%08x 0x%08x 0x%08x\n",
			addr, words[i], words[i+1], words[i+2], words[i+3])
	}
	return b.String()
}
