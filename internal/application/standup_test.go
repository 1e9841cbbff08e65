package application

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"f2yaml/internal/yamldoc"
)

const standupFixture = `2025-01-01:
  Was:
    - ~
  Next:
    - -->ProjectA//tasks.T-1<
    - -->ProjectA//tasks.T-2<
`

func parseDoc(t *testing.T, content string) *yamldoc.Document {
	t.Helper()
	doc, err := yamldoc.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestCreateEntry(t *testing.T) {
	entry := CreateEntry("-->A//b.c<", "20250101 T 120000")

	k, v, ok := yamldoc.SoleKey(entry)
	if !ok || k.Value != "-->A//b.c<" {
		t.Fatalf("unexpected entry key %v", k)
	}
	if v.Style != yaml.FlowStyle {
		t.Error("tuple should be flow style")
	}
	if got := yamldoc.Scalars(v); len(got) != 3 || got[0] != "0m" || got[1] != "" || got[2] != "20250101 T 120000" {
		t.Errorf("tuple = %q", got)
	}
}

func TestMoveToWas_ReusesPlaceholder(t *testing.T) {
	doc := parseDoc(t, standupFixture)
	entry := CreateEntry("-->ProjectA//tasks.T-1<", "20250101 T 120000")

	if i := CheckAlreadyInSr(doc, entry, "2025-01-01"); i != -1 {
		t.Fatalf("CheckAlreadyInSr on empty Was = %d, want -1", i)
	}

	if i := MoveToWas(doc, entry, "2025-01-01"); i != 0 {
		t.Errorf("MoveToWas index = %d, want 0", i)
	}
	was := WasSequence(doc, "2025-01-01")
	if len(was.Content) != 1 {
		t.Errorf("Was length = %d, want 1", len(was.Content))
	}
	if i := CheckAlreadyInSr(doc, entry, "2025-01-01"); i != 0 {
		t.Errorf("CheckAlreadyInSr after move = %d, want 0", i)
	}

	next := yamldoc.Scalars(NextSequence(doc, "2025-01-01"))
	if len(next) != 1 || next[0] != "-->ProjectA//tasks.T-2<" {
		t.Errorf("Next = %q, want only the unstarted task", next)
	}
}

func TestMoveToWas_AppendsWhenFull(t *testing.T) {
	doc := parseDoc(t, standupFixture)
	code := "2025-01-01"

	MoveToWas(doc, CreateEntry("-->A//b.c<", "t1"), code)
	if i := MoveToWas(doc, CreateEntry("-->A//b.d<", "t2"), code); i != 1 {
		t.Errorf("second entry index = %d, want 1", i)
	}
}

func TestCheckAlreadyInSr_ScansFromTheEnd(t *testing.T) {
	doc := parseDoc(t, standupFixture)
	code := "2025-01-01"

	MoveToWas(doc, CreateEntry("-->A//b.c<", "t1"), code)
	MoveToWas(doc, CreateEntry("-->A//b.d<", "t2"), code)
	MoveToWas(doc, CreateEntry("-->A//b.c<", "t3"), code)

	if i := CheckAlreadyInSr(doc, CreateEntry("-->A//b.c<", "t9"), code); i != 2 {
		t.Errorf("CheckAlreadyInSr = %d, want the last match 2", i)
	}
}

func TestStandupBucket_CreatedOnDemand(t *testing.T) {
	doc := parseDoc(t, "other: 1\n2025-01-02: not a mapping\n")

	was := WasSequence(doc, "2025-01-02")
	if was.Kind != yaml.SequenceNode || len(was.Content) != 1 || !yamldoc.IsNull(was.Content[0]) {
		t.Fatalf("expected Was: [~], got %v", was)
	}
	bucket := yamldoc.Get(doc.Root(), "2025-01-02")
	if yamldoc.Get(bucket, NextKey) == nil {
		t.Error("expected a Next bucket")
	}
	if yamldoc.Get(doc.Root(), "other") == nil {
		t.Error("unrelated keys must survive")
	}
}

func TestStandupBucket_RootShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"null root", "~\n", false},
		{"empty sequence root", "[]\n", false},
		{"sequence root", "- keep me\n- and me\n", true},
		{"scalar root", "just text\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.content)

			bucket, err := StandupBucket(doc, "2025-01-01")
			if !tt.wantErr {
				if err != nil || bucket == nil {
					t.Fatalf("StandupBucket = %v, %v", bucket, err)
				}
				return
			}

			var serr *StructuralError
			if !errors.As(err, &serr) {
				t.Fatalf("expected a StructuralError, got %v", err)
			}
			AppendLinkToWas(doc, "2025-01-01", "-->A//b.c<", "")
			out, err := doc.Bytes()
			if err != nil {
				t.Fatalf("Bytes failed: %v", err)
			}
			if string(out) != tt.content {
				t.Errorf("report was rewritten:\n%s", out)
			}
		})
	}
}

func TestStandupBucket_NewCodeIsWrittenBare(t *testing.T) {
	doc := parseDoc(t, "2025-01-01:\n  Was:\n    - ~\n")

	if _, err := StandupBucket(doc, "2025-01-02"); err != nil {
		t.Fatalf("StandupBucket failed: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if !contains(string(out), "\n2025-01-02:\n") {
		t.Errorf("new code was quoted:\n%s", out)
	}
	again := parseDoc(t, string(out))
	if yamldoc.Get(again.Root(), "2025-01-02") == nil {
		t.Errorf("new code not found after round trip:\n%s", out)
	}
}

func TestWasSequence_AcceptsLowercase(t *testing.T) {
	doc := parseDoc(t, "sr:\n  was:\n    - -->A//b.c<\n  next:\n    - ~\n")

	was := WasSequence(doc, "sr")
	if got := yamldoc.Scalars(was); len(got) != 1 || got[0] != "-->A//b.c<" {
		t.Errorf("was = %q", got)
	}
	if yamldoc.Get(yamldoc.Get(doc.Root(), "sr"), WasKey) != nil {
		t.Error("no Was key should be added next to was")
	}
}

func TestUpdateDuration_Accumulates(t *testing.T) {
	doc := parseDoc(t, standupFixture)
	code := "2025-01-01"
	i := MoveToWas(doc, CreateEntry("-->A//b.c<", "20250101 T 120000"), code)

	if _, err := UpdateDuration(doc, i, 10, code); err != nil {
		t.Fatalf("UpdateDuration failed: %v", err)
	}
	got, err := UpdateDuration(doc, i, 15, code)
	if err != nil {
		t.Fatalf("UpdateDuration failed: %v", err)
	}
	if got != "25m" {
		t.Errorf("duration = %s, want 25m", got)
	}

	if _, err := UpdateDuration(doc, 5, 1, code); err == nil {
		t.Error("expected an error for a missing entry")
	}
}

func TestAppendLinkToWas_WritesLinkBare(t *testing.T) {
	doc := parseDoc(t, standupFixture)

	AppendLinkToWas(doc, "2025-01-01", "-->A.B<", `[ 5m, "", 20250101 T 120000 ]`)

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	text := string(out)
	want := `-->A.B< [ 5m, "", 20250101 T 120000 ]`
	if !contains(text, "- "+want) {
		t.Errorf("expected bare %q in:\n%s", want, text)
	}
	if contains(text, `"`+want+`"`) || contains(text, `'`+want+`'`) {
		t.Errorf("literal was quoted:\n%s", text)
	}
}

func TestMoveToWas_LinksThatNeedQuotes(t *testing.T) {
	links := []string{
		`-->P//t.."Fix: login"<`,
		`-->P//t.."Fix issue #42"<`,
	}

	for _, link := range links {
		t.Run(link, func(t *testing.T) {
			doc := parseDoc(t, standupFixture)
			code := "2025-01-01"
			entry := CreateEntry(link, "20250101 T 120000")
			MoveToWas(doc, entry, code)

			out, err := doc.Bytes()
			if err != nil {
				t.Fatalf("Bytes failed: %v", err)
			}
			again, err := yamldoc.Parse(out)
			if err != nil {
				t.Fatalf("re-parse failed: %v\n%s", err, out)
			}
			if i := CheckAlreadyInSr(again, entry, code); i != 0 {
				t.Errorf("entry lost after round trip (index %d):\n%s", i, out)
			}
		})
	}
}

func TestMoveToWas_SurvivesRoundTrip(t *testing.T) {
	doc := parseDoc(t, standupFixture)
	code := "2025-01-01"
	entry := CreateEntry(`-->ProjectA//tasks.."Fix bug"<`, "20250101 T 120000")
	MoveToWas(doc, entry, code)

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	again := parseDoc(t, string(out))

	if i := CheckAlreadyInSr(again, entry, code); i != 0 {
		t.Fatalf("entry not found after round trip (index %d):\n%s", i, out)
	}
	entries := WasEntries(again, code)
	if len(entries) != 1 {
		t.Fatalf("Was entries = %d, want 1", len(entries))
	}
	if got := yamldoc.Scalars(entries[0].Tuple); got[0] != "0m" || got[2] != "20250101 T 120000" {
		t.Errorf("tuple = %q", got)
	}
}
