// Package bus provides the word-addressable memory map the pipeline's
// Fetch and Memory stages read and write: a read-only ROM region and a
// read-write RAM region, both accessed through sub-word masking.
package bus

// mmioDevice is a word-indexed backing store. Offsets are word indices,
// not byte addresses; Bus is responsible for the byte-to-word shift.
type mmioDevice interface {
	readWord(index int) uint32
	writeWord(index int, val uint32)
}
