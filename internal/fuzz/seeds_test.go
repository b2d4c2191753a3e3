package fuzztests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFencedBlocks(t *testing.T) {
	doc := []byte("# t\n\n```c\nint x;\nint y;\n```\n\n```sh\nls\n```\n\n    indented\n\n```c\n```\n")
	got := fencedBlocks(doc, "c")
	want := []string{"int x;\nint y;\n", ""}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(got))
	}
	for i := range got {
		if diff := cmp.Diff(want[i], string(got[i])); diff != "" {
			t.Errorf("block %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
