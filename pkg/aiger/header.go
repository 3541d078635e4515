// Package aiger implements the binary AIGER format: an
// ASCII header, binary delta-encoded AND gates, ASCII (or, in compact
// mode, also delta-encoded binary) latch and output literal lists, and a
// trailing sequence of tagged extension sections.
package aiger

import (
	"bufio"
	"fmt"
)

// Header is the AIGER "aig M I L O A" line: M = max variable index, I =
// inputs, L = latches, O = outputs, A = AND gates.
type Header struct {
	M, I, L, O, A int
}

func (h Header) String() string {
	return fmt.Sprintf("aig %d %d %d %d %d", h.M, h.I, h.L, h.O, h.A)
}

// writeHeader emits the single-line "aig[2] M I L O A\n" header, grounded
// on original_source/src/aig/gia/giaAiger.c's Gia_WriteAiger, which issues
// one fprintf for the tag and all five counts together.
func writeHeader(w *bufio.Writer, h Header, mode Mode) error {
	tag := "aig"
	if mode == ModeCompact {
		tag = "aig2"
	}
	_, err := fmt.Fprintf(w, "%s %d %d %d %d %d\n", tag, h.M, h.I, h.L, h.O, h.A)
	return err
}
