package result

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

func TestTableRecordsSortedAndCopied(t *testing.T) {
	tbl := NewTable()
	tbl.Add(EquivRecord{Repr: 5, Node: 9, Proved: true})
	tbl.Add(EquivRecord{Repr: 2, Node: 3, Proved: false})
	tbl.Add(EquivRecord{Repr: 2, Node: 1, Proved: true})

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	recs := tbl.Records()
	want := []aig.ID{1, 3, 9}
	for i, r := range recs {
		if r.Node != want[i] {
			t.Errorf("Records()[%d].Node = %d, want %d", i, r.Node, want[i])
		}
	}

	recs[0].Node = 999
	if tbl.Records()[0].Node == 999 {
		t.Fatalf("Records() leaked internal storage")
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.ckpt")

	ckpt := &Checkpoint{
		Records:       []EquivRecord{{Repr: 1, Node: 2, Inv: true, Proved: true, Queries: 3}},
		CompletedPair: 7,
		TotalQueries:  42,
	}
	if err := SaveCheckpoint(path, ckpt); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if got.CompletedPair != ckpt.CompletedPair || got.TotalQueries != ckpt.TotalQueries {
		t.Fatalf("checkpoint fields not preserved: %+v", got)
	}
	if len(got.Records) != 1 || got.Records[0] != ckpt.Records[0] {
		t.Fatalf("checkpoint records not preserved: %+v", got.Records)
	}
}

func TestWriteReadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	type report struct {
		Merged int `json:"merged"`
		Kept   int `json:"kept"`
	}
	want := report{Merged: 4, Kept: 2}
	if err := WriteJSON(path, want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	var got report
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got != want {
		t.Fatalf("ReadJSON = %+v, want %+v", got, want)
	}
}
