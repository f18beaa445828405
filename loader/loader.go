// Package loader reads a raw little-endian word stream into the slice
// format bus.New expects for ROM. There is no container format: the
// ROM image is just the instruction stream, four bytes per word,
// exactly as assembled.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LoadWords reads every complete 32-bit little-endian word from r. A
// trailing partial word (length not a multiple of 4) is an error rather
// than a silently truncated read, since it almost always indicates the
// wrong file was given.
func LoadWords(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("loader: image length %d is not a multiple of 4 bytes", len(raw))
	}

	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return words, nil
}

// LoadFile opens path and loads it with LoadWords.
func LoadFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadWords(f)
}
