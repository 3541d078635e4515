package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Read parses a binary AIGER stream (either mode Write produces) into a
// fresh aig.Manager, including any trailing extension sections.
func Read(r io.Reader) (*aig.Manager, error) {
	br := bufio.NewReader(r)

	headerLine, err := br.ReadString('\n')
	if err != nil && headerLine == "" {
		return nil, err
	}

	mode, h, err := parseHeaderLine(headerLine)
	if err != nil {
		return nil, err
	}

	m := aig.New()
	varToLit := make([]aig.Lit, h.M+1) // index 0 unused; vars are 1-based

	for i := 0; i < h.I; i++ {
		varToLit[i+1] = m.CreateCI()
	}
	for i := 0; i < h.L; i++ {
		varToLit[h.I+i+1] = m.CreateCI()
	}

	var latchRaw, outRaw []uint32
	if mode == ModeASCII {
		latchRaw = make([]uint32, h.L)
		for i := range latchRaw {
			latchRaw[i], err = readDecimalLine(br)
			if err != nil {
				return nil, err
			}
		}
		outRaw = make([]uint32, h.O)
		for i := range outRaw {
			outRaw[i], err = readDecimalLine(br)
			if err != nil {
				return nil, err
			}
		}
	} else {
		latchRaw, err = ReadDeltaLiterals(br, h.L)
		if err != nil {
			return nil, err
		}
		outRaw, err = ReadDeltaLiterals(br, h.O)
		if err != nil {
			return nil, err
		}
	}

	resolve := func(raw uint32) aig.Lit {
		v := raw >> 1
		compl := raw&1 != 0
		if v == 0 {
			if compl {
				return aig.Const1
			}
			return aig.Const0
		}
		l := varToLit[v]
		if compl {
			return l.Not()
		}
		return l
	}

	for i := 0; i < h.A; i++ {
		lhsVar := uint32(h.I + h.L + i + 1)
		d1, err := ReadVarint(br)
		if err != nil {
			return nil, err
		}
		d2, err := ReadVarint(br)
		if err != nil {
			return nil, err
		}
		rMax := lhsVar*2 - d1
		rMin := rMax - d2
		f0 := resolve(rMax)
		f1 := resolve(rMin)
		varToLit[lhsVar] = m.And(f0, f1)
	}

	for _, raw := range outRaw {
		m.AppendCO(resolve(raw))
	}
	for _, raw := range latchRaw {
		m.AppendCO(resolve(raw))
	}
	m.SetRegisterCount(h.L)

	if err := readSections(br, m); err != nil && err != io.EOF {
		return nil, err
	}
	return m, nil
}

// parseHeaderLine parses the single-line "aig[2] M I L O A" header (spec
// §6): the first whitespace-separated field selects ASCII vs compact mode,
// the remaining five are the decimal counts.
func parseHeaderLine(line string) (Mode, Header, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return 0, Header{}, fmt.Errorf("aiger: malformed header %q", line)
	}
	var mode Mode
	switch fields[0] {
	case "aig":
		mode = ModeASCII
	case "aig2":
		mode = ModeCompact
	default:
		return 0, Header{}, fmt.Errorf("aiger: malformed header %q", line)
	}
	nums := make([]int, 5)
	for i := 0; i < 5; i++ {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return 0, Header{}, fmt.Errorf("aiger: malformed header field %q: %w", fields[i+1], err)
		}
		nums[i] = n
	}
	return mode, Header{M: nums[0], I: nums[1], L: nums[2], O: nums[3], A: nums[4]}, nil
}

func readDecimalLine(br *bufio.Reader) (uint32, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	n, perr := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
	if perr != nil {
		return 0, fmt.Errorf("aiger: malformed literal line %q: %w", line, perr)
	}
	return uint32(n), nil
}
