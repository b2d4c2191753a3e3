package lsp

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"minic/internal/driver"
	"minic/internal/source"
)

const testURI = protocol.DocumentUri("file:///work/main.c")

func analyze(t *testing.T, src string) *driver.Result {
	t.Helper()
	return driver.AnalyzeSource(context.Background(), "main.c", []byte(src), driver.DefaultOptions())
}

func TestUriToPath(t *testing.T) {
	tests := []struct {
		uri  protocol.DocumentUri
		want string
	}{
		{"file:///work/main.c", "/work/main.c"},
		{"file:///work/my%20dir/a.c", "/work/my dir/a.c"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		if got := uriToPath(tt.uri); got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestPositionCountsUTF16(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("u.c", []byte("int a;\n// é𝄞x\n")))

	tests := []struct {
		off  uint32
		want protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{4, protocol.Position{Line: 0, Character: 4}},
		{7, protocol.Position{Line: 1, Character: 0}},
		// "// " + é (2 bytes, 1 unit) + 𝄞 (4 bytes, 2 units)
		{7 + 3 + 2 + 4, protocol.Position{Line: 1, Character: 6}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, position(f, tt.off)); diff != "" {
			t.Errorf("position(%d) mismatch (-want +got):\n%s", tt.off, diff)
		}
	}
}

func TestToProtocol(t *testing.T) {
	res := analyze(t, "int main() {\n    int x = 1\n    foo(x;\n}\n")
	items := res.Diagnostics()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}

	got := toProtocol(testURI, res.File, items)
	semi := got[0]
	if semi.Code == nil || semi.Code.Value != "SYN2002" {
		t.Errorf("code = %+v", semi.Code)
	}
	if semi.Source == nil || *semi.Source != "minic" {
		t.Errorf("source = %v", semi.Source)
	}
	if semi.Severity == nil || *semi.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v", semi.Severity)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 13},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	if diff := cmp.Diff(wantRange, semi.Range); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}

	paren := got[1]
	if len(paren.RelatedInformation) != 1 {
		t.Fatalf("expected the opening paren as related information, got %+v", paren.RelatedInformation)
	}
	rel := paren.RelatedInformation[0]
	if rel.Location.URI != testURI || rel.Location.Range.Start != (protocol.Position{Line: 2, Character: 7}) {
		t.Errorf("related location = %+v", rel.Location)
	}
}

func TestQuickFixes(t *testing.T) {
	res := analyze(t, "int main() {\n    int x = 1\n    return x;\n}\n")
	items := res.Diagnostics()

	cursor := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 13},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	actions := quickFixes(testURI, res.File, items, cursor)
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	action := actions[0]
	if action.Title != "insert ';'" || action.Kind == nil || *action.Kind != protocol.CodeActionKindQuickFix {
		t.Errorf("unexpected action %q kind %v", action.Title, action.Kind)
	}
	want := []protocol.TextEdit{{Range: cursor, NewText: ";"}}
	if diff := cmp.Diff(want, action.Edit.Changes[testURI]); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}

	elsewhere := protocol.Range{
		Start: protocol.Position{Line: 3, Character: 0},
		End:   protocol.Position{Line: 3, Character: 1},
	}
	if got := quickFixes(testURI, res.File, items, elsewhere); len(got) != 0 {
		t.Errorf("expected no actions away from the diagnostic, got %d", len(got))
	}
}

func TestOverlaps(t *testing.T) {
	r := func(l1, c1, l2, c2 protocol.UInteger) protocol.Range {
		return protocol.Range{
			Start: protocol.Position{Line: l1, Character: c1},
			End:   protocol.Position{Line: l2, Character: c2},
		}
	}
	tests := []struct {
		a, b protocol.Range
		want bool
	}{
		{r(0, 0, 0, 5), r(0, 3, 0, 8), true},
		{r(0, 0, 0, 5), r(0, 5, 0, 5), true},
		{r(0, 0, 0, 5), r(0, 6, 0, 9), false},
		{r(1, 0, 1, 0), r(0, 0, 2, 0), true},
		{r(2, 0, 2, 1), r(0, 0, 1, 9), false},
	}
	for i, tt := range tests {
		if got := overlaps(tt.a, tt.b); got != tt.want {
			t.Errorf("case %d: overlaps = %v, want %v", i, got, tt.want)
		}
	}
}

func TestServerTracksDocuments(t *testing.T) {
	s := NewServer(driver.DefaultOptions(), "test", false)

	if _, ok := s.diagnosticsFor(testURI); ok {
		t.Fatal("unknown documents have no diagnostics")
	}

	s.update(testURI, "int main() {\n    int x = 1\n    return x;\n}\n")
	params, ok := s.diagnosticsFor(testURI)
	if !ok || len(params.Diagnostics) != 1 || params.URI != testURI {
		t.Fatalf("unexpected publish params %+v", params)
	}

	s.update(testURI, "int main() {\n    return 0;\n}\n")
	params, _ = s.diagnosticsFor(testURI)
	if len(params.Diagnostics) != 0 {
		t.Errorf("fixed document still has %d diagnostics", len(params.Diagnostics))
	}
}
