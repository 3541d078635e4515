package aiger

import (
	"bufio"
	"io"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Mode selects the wire-format variant for the latch and output literal
// lists; AND gates are always binary delta-encoded in both modes.
type Mode int

const (
	// ModeASCII writes latch-next and output literals one per text line
	// (the traditional, human-diffable binary AIGER variant).
	ModeASCII Mode = iota
	// ModeCompact ("aig2") additionally delta-encodes the latch-next and
	// output literal lists as binary.
	ModeCompact
)

// writeLayout assigns AIGER variable numbers 1..M to every CI and And
// node, in the order the format requires: primary inputs, then latches,
// then AND gates in topological order.
type writeLayout struct {
	pis, latches []aig.ID
	npo          int
	andOrder     []aig.ID
	varOf        map[aig.ID]int
}

func buildWriteLayout(m *aig.Manager) writeLayout {
	regs := m.RegisterCount()
	cis := m.CIs()
	npi := len(cis) - regs
	l := writeLayout{
		pis:     cis[:npi],
		latches: cis[npi:],
		npo:     m.NumCO() - regs,
		varOf:   make(map[aig.ID]int),
	}
	m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) { l.andOrder = append(l.andOrder, id) })

	v := 1
	for _, id := range l.pis {
		l.varOf[id] = v
		v++
	}
	for _, id := range l.latches {
		l.varOf[id] = v
		v++
	}
	for _, id := range l.andOrder {
		l.varOf[id] = v
		v++
	}
	return l
}

func (l writeLayout) maxVar() int { return len(l.pis) + len(l.latches) + len(l.andOrder) }

func (l writeLayout) lit(al aig.Lit) uint32 {
	id := al.Var()
	if id == 0 {
		if al.IsCompl() {
			return 1
		}
		return 0
	}
	v := uint32(l.varOf[id]) * 2
	if al.IsCompl() {
		v++
	}
	return v
}

// Write serializes m in the binary AIGER format. Extension sections
// present on m (equivalence classes, flop classes, LUT mapping, placement,
// switching activity, constraint count, model name) are appended
// afterward, each introduced by a 1-byte tag. All but two are framed by a
// 4-byte big-endian length; the constraint count is a bare 4-byte value
// and the model name is NUL-terminated.
func Write(w io.Writer, m *aig.Manager, mode Mode) error {
	bw := bufio.NewWriter(w)
	layout := buildWriteLayout(m)

	h := Header{M: layout.maxVar(), I: len(layout.pis), L: len(layout.latches), O: layout.npo, A: len(layout.andOrder)}
	if err := writeHeader(bw, h, mode); err != nil {
		return err
	}

	latchLits := make([]uint32, len(layout.latches))
	for i := range layout.latches {
		latchLits[i] = layout.lit(m.COFanin(layout.npo + i))
	}
	poLits := make([]uint32, layout.npo)
	for i := 0; i < layout.npo; i++ {
		poLits[i] = layout.lit(m.COFanin(i))
	}

	if mode == ModeASCII {
		for _, l := range latchLits {
			if _, err := bw.WriteString(itoa(l) + "\n"); err != nil {
				return err
			}
		}
		for _, l := range poLits {
			if _, err := bw.WriteString(itoa(l) + "\n"); err != nil {
				return err
			}
		}
	} else {
		if err := WriteDeltaLiterals(bw, latchLits); err != nil {
			return err
		}
		if err := WriteDeltaLiterals(bw, poLits); err != nil {
			return err
		}
	}

	for _, id := range layout.andOrder {
		f0, f1 := m.Fanins(id)
		lhs := uint32(layout.varOf[id]) * 2
		r0 := layout.lit(f0)
		r1 := layout.lit(f1)
		rMax, rMin := r0, r1
		if rMin > rMax {
			rMax, rMin = rMin, rMax
		}
		if err := WriteVarint(bw, lhs-rMax); err != nil {
			return err
		}
		if err := WriteVarint(bw, rMax-rMin); err != nil {
			return err
		}
	}

	if err := writeSections(bw, m); err != nil {
		return err
	}
	return bw.Flush()
}

func itoa(x uint32) string {
	if x == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for x > 0 {
		i--
		buf[i] = byte('0' + x%10)
		x /= 10
	}
	return string(buf[i:])
}
