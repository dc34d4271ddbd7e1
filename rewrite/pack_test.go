package rewrite

import (
	"testing"

	"seehuhn.de/go/deepluna/container"
	"seehuhn.de/go/deepluna/script"
	"seehuhn.de/go/deepluna/tldb"
)

// buildOffsetAndStringTable terminates the real table with the final
// string position twice before the 0xFFFFFFFF sentinel (see its own
// doc comment); decoding it back with container.DecodeStringTable
// therefore always yields one extra trailing empty string beyond the
// real entries, which is harmless to a reader that only looks up
// offsets 0..maxOffset directly.
func TestBuildOffsetAndStringTableRoundTripsThroughContainer(t *testing.T) {
	offsetToString := map[uint32]string{0: "hello", 1: "world"}
	offsets, strs := buildOffsetAndStringTable(offsetToString)

	got, err := container.DecodeStringTable(offsets, strs)
	if err != nil {
		t.Fatalf("DecodeStringTable: %v", err)
	}
	want := []string{"hello", "world", ""}
	if len(got) != len(want) {
		t.Fatalf("DecodeStringTable = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildOffsetAndStringTableHandlesGaps(t *testing.T) {
	offsetToString := map[uint32]string{0: "a", 2: "c"}
	offsets, strs := buildOffsetAndStringTable(offsetToString)

	got, err := container.DecodeStringTable(offsets, strs)
	if err != nil {
		t.Fatalf("DecodeStringTable: %v", err)
	}
	want := []string{"a", "", "c", ""}
	if len(got) != len(want) {
		t.Fatalf("DecodeStringTable = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildFillerTableMatchesRealEntryCount(t *testing.T) {
	offsetToString := map[uint32]string{0: "a", 1: "bb", 2: "ccc"}
	offsets, _ := buildOffsetAndStringTable(offsetToString)

	filler := buildFillerTable(offsets, fillerNL)
	got, err := container.DecodeStringTable(filler.offsets, filler.strings)
	if err != nil {
		t.Fatalf("DecodeStringTable: %v", err)
	}
	// 3 real offsets plus the same trailing-empty artifact.
	if len(got) != 4 {
		t.Fatalf("filler entries = %d, want 4", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[i] != fillerNL {
			t.Errorf("filler entry %d = %q, want %q", i, got[i], fillerNL)
		}
	}
	if got[3] != "" {
		t.Errorf("trailing filler entry = %q, want empty", got[3])
	}
}

func TestGeneratePacksTenSections(t *testing.T) {
	db := tldb.New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("jp0")},
	}
	line := tldb.TLLine{JPText: "jp0", EnText: "hi", ContentHash: script.Hash("jp0")}
	db.LineByHash[script.Hash("jp0")] = line

	image, err := Generate(db, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sections, err := container.Parse(image)
	if err != nil {
		t.Fatalf("container.Parse(Generate output): %v", err)
	}
	if len(sections) != 10 {
		t.Fatalf("sections = %d, want 10", len(sections))
	}

	strs, err := container.DecodeStringTable(sections[0], sections[1])
	if err != nil {
		t.Fatalf("DecodeStringTable: %v", err)
	}
	if len(strs) != 2 || strs[0] != "hi" {
		t.Errorf("real string table = %v, want [\"hi\", \"\"]", strs)
	}
}
