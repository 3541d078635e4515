package lutmap

import "github.com/berkeley-abc/abc-sub020/pkg/aig"

// Stats summarizes a completed mapping run, supplementing the mapper's
// core contract with the reporting original_source/src/map/mapper/*
// printed after every mapping pass.
type Stats struct {
	NumLuts   int
	NumEdges  int
	MaxFanins int
	Depth     int32
}

func computeStats(table *aig.LutTable, arrival map[aig.ID]int32) Stats {
	var s Stats
	s.NumLuts = len(table.Entries)
	for _, e := range table.Entries {
		s.NumEdges += len(e.Fanins)
		if len(e.Fanins) > s.MaxFanins {
			s.MaxFanins = len(e.Fanins)
		}
		if a := arrival[e.Root]; a > s.Depth {
			s.Depth = a
		}
	}
	return s
}
