package tldb

import (
	"testing"

	"seehuhn.de/go/deepluna/script"
)

func findingsWithRule(findings []LintFinding, rule string) []LintFinding {
	var out []LintFinding
	for _, f := range findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func TestLintPageMonotonicity(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), PageNumber: 2},
		{Offset: 1, JPHash: script.Hash("b"), PageNumber: 1},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "x")
	db.LineByHash[script.Hash("b")] = lineFor("b", "y")

	got := findingsWithRule(Lint(db), "page-monotonicity")
	if len(got) != 1 || got[0].Offset != 1 {
		t.Fatalf("page-monotonicity findings = %+v, want one at offset 1", got)
	}
}

func TestLintGlueContractFirstOnPage(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), PageNumber: 0, IsGlued: true},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "x")

	got := findingsWithRule(Lint(db), "glue-contract")
	if len(got) != 1 || got[0].Offset != 0 {
		t.Fatalf("glue-contract findings = %+v, want one at offset 0", got)
	}
}

func TestLintChoiceRequiresLeadingSpace(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), IsChoice: true},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "no leading space")

	got := findingsWithRule(Lint(db), "choice-leading-space")
	if len(got) != 1 {
		t.Fatalf("choice-leading-space findings = %+v, want one", got)
	}
}

func TestLintVerbotenUnicode(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a")},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "she said “hello”…")

	got := findingsWithRule(Lint(db), "verboten-unicode")
	if len(got) != 3 {
		t.Fatalf("verboten-unicode findings = %+v, want 3 (opening/closing quote + ellipsis)", got)
	}
}

func TestLintStrayFullwidthCharacter(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a")},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "hello世界")

	got := findingsWithRule(Lint(db), "stray-fullwidth-character")
	if len(got) != 2 {
		t.Fatalf("stray-fullwidth-character findings = %+v, want 2", got)
	}
}

func TestLintBrokenFormattingStrictControlCode(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a")},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "text %{i}unclosed")

	got := findingsWithRule(Lint(db), "broken-formatting")
	if len(got) != 1 || got[0].Offset != 0 {
		t.Fatalf("broken-formatting findings = %+v, want one at offset 0", got)
	}
}

func TestLintOrphanPartitionViolation(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), PageNumber: 0},
	}
	db.SceneMap[OrphanedScene] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), PageNumber: -1},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "hello")

	got := findingsWithRule(Lint(db), "orphan-partition")
	if len(got) != 1 || got[0].Offset != 0 {
		t.Fatalf("orphan-partition findings = %+v, want one at offset 0", got)
	}
}

func TestLintHashMismatch(t *testing.T) {
	db := New()
	line := lineFor("a", "x")
	line.JPText = "tampered"
	db.LineByHash[script.Hash("a")] = line

	got := findingsWithRule(Lint(db), "hash-mismatch")
	if len(got) != 1 {
		t.Fatalf("hash-mismatch findings = %+v, want one", got)
	}
}

func TestLintCleanDBHasNoFindings(t *testing.T) {
	db := New()
	db.SceneMap["scene1"] = []script.TextCommand{
		{Offset: 0, JPHash: script.Hash("a"), PageNumber: 0},
		{Offset: 1, JPHash: script.Hash("b"), PageNumber: 0, IsGlued: true},
	}
	db.LineByHash[script.Hash("a")] = lineFor("a", "hello")
	db.LineByHash[script.Hash("b")] = lineFor("b", "world")

	if got := Lint(db); len(got) != 0 {
		t.Errorf("expected no findings, got %+v", got)
	}
}
