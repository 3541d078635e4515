package result

import (
	"encoding/gob"
	"encoding/json"
	"os"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// Checkpoint holds a sweep's resolved records and progress counters for
// SaveCheckpoint/LoadCheckpoint. Neither Run nor RunParallel reads or
// writes a checkpoint, so an interrupted sweep is not resumed from one.
type Checkpoint struct {
	Records       []EquivRecord
	CompletedPair int // count of class members fully resolved
	TotalQueries  int
}

func init() {
	gob.Register(EquivRecord{})
	gob.Register(aig.ID(0))
}

// SaveCheckpoint writes sweep state to a file.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint loads sweep state from a file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}

// WriteJSON renders any report value (cut statistics, LUT-mapping
// summaries, equivalence tables) as indented JSON, the format the CLI's
// `stats`, `map` and `sweep` subcommands emit with --output.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadJSON loads a report previously written by WriteJSON into v.
func ReadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
