package aiger

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Extension tags, table. The reader treats any other byte as the
// start of a free-form trailing comment and stops.
const (
	tagEquiv      = 'e'
	tagFlop       = 'f'
	tagMapping    = 'm'
	tagPlacement  = 'p'
	tagSwitching  = 's'
	tagConstraint = 'c'
	tagModelName  = 'n'
)

// readSections consumes the optional 'c'-introduced extension block that
// may follow the AND definitions: a single separator byte,
// then zero or more tagged sections in the set {e,f,m,p,s,c,n}. The first
// byte that is not a known tag terminates the block; everything after it,
// up to EOF, is a free-form comment and is not consumed.
func readSections(r *bufio.Reader, m *aig.Manager) error {
	sep, err := r.ReadByte()
	if err != nil {
		return nil
	}
	if sep != tagConstraint {
		return nil
	}
	for {
		tag, err := r.ReadByte()
		if err != nil {
			return nil
		}
		switch tag {
		case tagEquiv:
			if err := readEquivSection(r, m); err != nil {
				return err
			}
		case tagFlop:
			if err := readFlopSection(r, m); err != nil {
				return err
			}
		case tagMapping:
			if err := readMappingSection(r, m); err != nil {
				return err
			}
		case tagPlacement:
			if err := readPlacementSection(r, m); err != nil {
				return err
			}
		case tagSwitching:
			if err := readSwitchingSection(r, m); err != nil {
				return err
			}
		case tagConstraint:
			if err := readConstraintSection(r, m); err != nil {
				return err
			}
		case tagModelName:
			if err := readModelNameSection(r, m); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// writeSections emits the 'c' separator followed by every extension
// section m currently carries side-car data for, in the fixed order the
// table lists them.
func writeSections(w *bufio.Writer, m *aig.Manager) error {
	if !m.HasEquiv() && m.FlopClasses() == nil && m.LutTable() == nil &&
		m.Placement() == nil && m.Switching() == nil && m.Constraints() == 0 &&
		m.ModelName() == "" {
		return nil
	}
	if err := w.WriteByte(tagConstraint); err != nil {
		return err
	}
	if m.HasEquiv() {
		if err := writeEquivSection(w, m); err != nil {
			return err
		}
	}
	if m.FlopClasses() != nil {
		if err := writeFlopSection(w, m); err != nil {
			return err
		}
	}
	if m.LutTable() != nil {
		if err := writeMappingSection(w, m); err != nil {
			return err
		}
	}
	if m.Placement() != nil {
		if err := writePlacementSection(w, m); err != nil {
			return err
		}
	}
	if m.Switching() != nil {
		if err := writeSwitchingSection(w, m); err != nil {
			return err
		}
	}
	if m.Constraints() != 0 {
		if err := writeConstraintSection(w, m); err != nil {
			return err
		}
	}
	if m.ModelName() != "" {
		if err := writeModelNameSection(w, m); err != nil {
			return err
		}
	}
	return nil
}

func readUint32BE(r *bufio.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func writeUint32BE(w *bufio.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// readDiffValue decodes one delta-coded value relative to prev, grounded
// on original_source/src/aig/gia/giaAiger.c's Gia_ReadDiffValue: the
// varint's low bit selects the direction of the delta.
func readDiffValue(r *bufio.Reader, prev uint32) (uint32, error) {
	item, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if item&1 != 0 {
		return prev + item>>1, nil
	}
	return prev - item>>1, nil
}

func writeDiffValue(w *bufio.Writer, cur, prev uint32) error {
	if cur >= prev {
		return WriteVarint(w, ((cur-prev)<<1)|1)
	}
	return WriteVarint(w, (prev-cur)<<1)
}

// readEquivSection decodes the 'e' section's (repr, proved-bit, member)
// triple stream, grounded on Gia_ReadEquivClasses: an odd varint item
// advances the running representative id, an even item records a member
// of the current class at a delta from the running node id, with the
// proved bit folded into the low end of the shifted delta.
func readEquivSection(r *bufio.Reader, m *aig.Manager) error {
	length, err := readUint32BE(r)
	if err != nil {
		return err
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return err
	}
	br := bufio.NewReader(bytes.NewReader(payload))

	m.EnsureEquivTables()
	var repr, node uint32
	for {
		item, err := ReadVarint(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if item&1 != 0 {
			repr += item >> 1
			node = repr
			continue
		}
		rest := item >> 1
		proved := rest&1 != 0
		node += rest >> 1
		m.SetEquivRepr(aig.ID(node), aig.ID(repr), proved)
	}
}

func writeEquivSection(w *bufio.Writer, m *aig.Manager) error {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)

	var curRepr, curNode uint32
	for id := aig.ID(1); int(id) < m.NodeCount(); id++ {
		repr := uint32(m.EquivRepr(id))
		if repr == uint32(id) {
			continue
		}
		if repr != curRepr {
			if err := WriteVarint(bw, ((repr-curRepr)<<1)|1); err != nil {
				return err
			}
			curRepr = repr
			curNode = repr
		}
		provedBit := uint32(0)
		if m.EquivProved(id) {
			provedBit = 1
		}
		delta := uint32(id) - curNode
		if err := WriteVarint(bw, (delta<<2)|(provedBit<<1)); err != nil {
			return err
		}
		curNode = uint32(id)
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if err := w.WriteByte(tagEquiv); err != nil {
		return err
	}
	if err := writeUint32BE(w, uint32(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// readFlopSection decodes the 'f' section's raw big-endian int32 class id
// per register.
func readFlopSection(r *bufio.Reader, m *aig.Manager) error {
	length, err := readUint32BE(r)
	if err != nil {
		return err
	}
	n := length / 4
	classes := make([]int32, n)
	for i := range classes {
		v, err := readUint32BE(r)
		if err != nil {
			return err
		}
		classes[i] = int32(v)
	}
	m.SetFlopClasses(classes)
	return nil
}

func writeFlopSection(w *bufio.Writer, m *aig.Manager) error {
	classes := m.FlopClasses()
	if err := w.WriteByte(tagFlop); err != nil {
		return err
	}
	if err := writeUint32BE(w, uint32(4*len(classes))); err != nil {
		return err
	}
	for _, c := range classes {
		if err := writeUint32BE(w, uint32(c)); err != nil {
			return err
		}
	}
	return nil
}

// readMappingSection decodes the 'm' section's per-LUT varint stream,
// grounded on Gia_ReadMapping: nFanins, then nFanins+1 delta-coded values
// (the fanins followed by the LUT's own root id).
func readMappingSection(r *bufio.Reader, m *aig.Manager) error {
	length, err := readUint32BE(r)
	if err != nil {
		return err
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return err
	}
	br := bufio.NewReader(bytes.NewReader(payload))

	table := &aig.LutTable{}
	var iNode uint32
	for {
		nFanins, err := ReadVarint(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		fanins := make([]aig.ID, nFanins)
		for i := uint32(0); i < nFanins; i++ {
			iNode, err = readDiffValue(br, iNode)
			if err != nil {
				return err
			}
			fanins[i] = aig.ID(iNode)
		}
		iNode, err = readDiffValue(br, iNode)
		if err != nil {
			return err
		}
		if table.K < len(fanins) {
			table.K = len(fanins)
		}
		table.Entries = append(table.Entries, aig.LutEntry{Fanins: fanins, Root: aig.ID(iNode)})
	}
	m.SetLutTable(table)
	return nil
}

func writeMappingSection(w *bufio.Writer, m *aig.Manager) error {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)

	var iNode uint32
	for _, e := range m.LutTable().Entries {
		if err := WriteVarint(bw, uint32(len(e.Fanins))); err != nil {
			return err
		}
		for _, f := range e.Fanins {
			if err := writeDiffValue(bw, uint32(f), iNode); err != nil {
				return err
			}
			iNode = uint32(f)
		}
		if err := writeDiffValue(bw, uint32(e.Root), iNode); err != nil {
			return err
		}
		iNode = uint32(e.Root)
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if err := w.WriteByte(tagMapping); err != nil {
		return err
	}
	if err := writeUint32BE(w, uint32(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// readPlacementSection decodes the 'p' section: a 4-byte-per-object
// record of two int16 coordinates, grounded on Gia_ReadPlacement's
// 4-bytes-per-object Gia_Plc_t array.
func readPlacementSection(r *bufio.Reader, m *aig.Manager) error {
	length, err := readUint32BE(r)
	if err != nil {
		return err
	}
	n := length / 4
	out := make([]aig.Placement, n)
	var buf [4]byte
	for i := range out {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return err
		}
		out[i] = aig.Placement{
			X: int16(binary.BigEndian.Uint16(buf[0:2])),
			Y: int16(binary.BigEndian.Uint16(buf[2:4])),
		}
	}
	m.SetPlacement(out)
	return nil
}

// writePlacementSection emits one 4-byte record per object (m.NodeCount()),
// writing zero coordinates for objects the side car does not cover.
func writePlacementSection(w *bufio.Writer, m *aig.Manager) error {
	p := m.Placement()
	n := m.NodeCount()
	if err := w.WriteByte(tagPlacement); err != nil {
		return err
	}
	if err := writeUint32BE(w, uint32(4*n)); err != nil {
		return err
	}
	var buf [4]byte
	for i := 0; i < n; i++ {
		var obj aig.Placement
		if i < len(p) {
			obj = p[i]
		}
		binary.BigEndian.PutUint16(buf[0:2], uint16(obj.X))
		binary.BigEndian.PutUint16(buf[2:4], uint16(obj.Y))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// readSwitchingSection decodes the 's' section: one raw activity byte per
// object.
func readSwitchingSection(r *bufio.Reader, m *aig.Manager) error {
	length, err := readUint32BE(r)
	if err != nil {
		return err
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return err
	}
	m.SetSwitching(out)
	return nil
}

// writeSwitchingSection emits one activity byte per object (m.NodeCount()),
// writing zero for objects the side car does not cover.
func writeSwitchingSection(w *bufio.Writer, m *aig.Manager) error {
	s := make([]byte, m.NodeCount())
	copy(s, m.Switching())
	if err := w.WriteByte(tagSwitching); err != nil {
		return err
	}
	if err := writeUint32BE(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write(s)
	return err
}

// readConstraintSection decodes the 'c' section: a bare 4-byte big-endian
// count, with no length prefix (unlike the other sections).
func readConstraintSection(r *bufio.Reader, m *aig.Manager) error {
	v, err := readUint32BE(r)
	if err != nil {
		return err
	}
	m.SetConstraints(int(v))
	return nil
}

func writeConstraintSection(w *bufio.Writer, m *aig.Manager) error {
	if err := w.WriteByte(tagConstraint); err != nil {
		return err
	}
	return writeUint32BE(w, uint32(m.Constraints()))
}

// readModelNameSection decodes the 'n' section: a NUL-terminated string
// running to the byte before the terminator.
func readModelNameSection(r *bufio.Reader, m *aig.Manager) error {
	s, err := r.ReadString(0)
	if err != nil {
		return err
	}
	m.SetModelName(s[:len(s)-1])
	return nil
}

func writeModelNameSection(w *bufio.Writer, m *aig.Manager) error {
	if err := w.WriteByte(tagModelName); err != nil {
		return err
	}
	if _, err := w.WriteString(m.ModelName()); err != nil {
		return err
	}
	return w.WriteByte(0)
}
