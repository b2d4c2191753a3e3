package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONDiagnostics(t *testing.T) {
	res := analyze(t, missingSemicolon)

	var buf bytes.Buffer
	err := JSON(&buf, res.Diagnostics(), res.FileSet, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SYN2002" || d.Kind != "MissingSemicolon" {
		t.Errorf("unexpected identity: %+v", d)
	}
	loc := d.Location
	if loc.File != "test.c" || loc.StartLine != 2 || loc.StartCol != 15 || loc.StartByte != loc.EndByte {
		t.Errorf("unexpected location: %+v", loc)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one fix with one edit, got %+v", d.Fixes)
	}
	if edit := d.Fixes[0].Edits[0]; edit.NewText != ";" || edit.OldText != "" {
		t.Errorf("unexpected edit: %+v", edit)
	}
}

func TestJSONNotesAndMax(t *testing.T) {
	res := analyze(t, "int f() {\n    foo(1, 2;\n    bar(3;\n}\n")
	items := res.Diagnostics()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}

	out := BuildDiagnosticsOutput(items, res.FileSet, JSONOpts{Max: 1})
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max should trim output only: count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	if out.Diagnostics[0].Notes != nil || out.Diagnostics[0].Fixes != nil {
		t.Errorf("notes and fixes must be opt-in: %+v", out.Diagnostics[0])
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions must be opt-in: %+v", out.Diagnostics[0].Location)
	}

	out = BuildDiagnosticsOutput(items, res.FileSet, JSONOpts{IncludeNotes: true, IncludePositions: true})
	notes := out.Diagnostics[1].Notes
	if len(notes) != 1 || notes[0].Message != "'(' opened here" || notes[0].Location.StartLine != 3 {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestJSONEmpty(t *testing.T) {
	res := analyze(t, "int main() { return 0; }\n")
	var buf bytes.Buffer
	if err := JSON(&buf, res.Diagnostics(), res.FileSet, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"diagnostics\": [],\n  \"count\": 0\n}\n"
	if buf.String() != want {
		t.Errorf("JSON() = %q, want %q", buf.String(), want)
	}
}
