package aiger

import "bufio"

// WriteDeltaLiterals binary-encodes a sequence of AIGER literals as a
// first absolute value followed by zigzag deltas, the compact ("aig2")
// mode's representation of the latch-next and output literal lists,
// grounded on original_source/src/aig/gia/giaAiger.c's Gia_WriteEncodeLiterals.
func WriteDeltaLiterals(w *bufio.Writer, lits []uint32) error {
	if len(lits) == 0 {
		return nil
	}
	if err := WriteVarint(w, lits[0]); err != nil {
		return err
	}
	prev := lits[0]
	for _, lit := range lits[1:] {
		var diff uint32
		var neg uint32
		if lit < prev {
			diff = prev - lit
			neg = 1
		} else {
			diff = lit - prev
		}
		zigzag := (diff << 1) | neg
		if err := WriteVarint(w, zigzag); err != nil {
			return err
		}
		prev = lit
	}
	return nil
}

// ReadDeltaLiterals decodes n literals written by WriteDeltaLiterals
// (grounded on Gia_WriteDecodeLiterals).
func ReadDeltaLiterals(r *bufio.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]uint32, n)
	prev, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	out[0] = prev
	for i := 1; i < n; i++ {
		zigzag, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		diff := zigzag >> 1
		var lit uint32
		if zigzag&1 != 0 {
			lit = prev - diff
		} else {
			lit = prev + diff
		}
		out[i] = lit
		prev = lit
	}
	return out, nil
}
