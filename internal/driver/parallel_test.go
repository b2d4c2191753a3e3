package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestListSourceFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.c":          "",
		"sub/b.c":      "",
		"sub/deep/c.c": "",
		"build/gen.c":  "",
		"notes.txt":    "",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"default", nil, nil, []string{"a.c", "build/gen.c", "sub/b.c", "sub/deep/c.c"}},
		{"exclude dir", nil, []string{"build/**"}, []string{"a.c", "sub/b.c", "sub/deep/c.c"}},
		{"top level only", []string{"*.c"}, nil, []string{"a.c"}},
		{"exclude file", []string{"**/*.c"}, []string{"**/deep/*.c"}, []string{"a.c", "build/gen.c", "sub/b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ListSourceFiles(root, tt.include, tt.exclude)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, relPaths(t, root, files)); diff != "" {
				t.Fatalf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ListSourceFiles(root, []string{"[oops"}, nil); err == nil {
		t.Fatal("expected an invalid pattern to fail")
	}
}

func TestAnalyzeDirMatchesSequentialRuns(t *testing.T) {
	want := make(map[string][]diagAt)
	for _, name := range []string{"exemplo_simples.c", "exemplo_erros.c", "test_code.c", "test_errors.c"} {
		want[name] = project(analyzeFixture(t, name).Diagnostics())
	}

	for _, jobs := range []int{1, 4} {
		opts := DefaultOptions()
		opts.Jobs = jobs

		var mu sync.Mutex
		events := make(map[string][]Status)
		opts.Progress = func(ev ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events[filepath.Base(ev.Path)] = append(events[filepath.Base(ev.Path)], ev.Status)
		}

		res, err := AnalyzeDir(context.Background(), "testdata", opts)
		if err != nil {
			t.Fatalf("jobs=%d: %v", jobs, err)
		}
		if len(res.Files) != len(want) {
			t.Fatalf("jobs=%d: expected %d files, got %d", jobs, len(want), len(res.Files))
		}
		total := 0
		for _, f := range res.Files {
			name := filepath.Base(f.Path)
			if diff := cmp.Diff(want[name], project(f.Diagnostics())); diff != "" {
				t.Fatalf("jobs=%d %s mismatch (-want +got):\n%s", jobs, name, diff)
			}
			total += len(want[name])

			wantStatus := StatusDone
			if len(want[name]) > 0 {
				wantStatus = StatusError
			}
			if diff := cmp.Diff([]Status{StatusQueued, StatusWorking, wantStatus}, events[name]); diff != "" {
				t.Fatalf("jobs=%d %s events (-want +got):\n%s", jobs, name, diff)
			}
		}
		if res.DiagnosticCount() != total {
			t.Fatalf("jobs=%d: DiagnosticCount = %d, want %d", jobs, res.DiagnosticCount(), total)
		}
	}
}

func TestAnalyzeDirReportsLoadFailure(t *testing.T) {
	root := writeTree(t, map[string]string{"ok.c": "int x;\n"})
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken.c")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := AnalyzeDir(context.Background(), root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(res.Files))
	}
	broken := res.Files[0]
	if broken.LoadErr == nil || broken.Builder != nil {
		t.Fatalf("expected a load failure without a tree: %+v", broken)
	}
	if got := project(broken.Diagnostics()); len(got) != 1 || got[0].Kind != "LoadFileError" {
		t.Fatalf("unexpected diagnostics %v", got)
	}
	if res.Files[1].HasDiagnostics() {
		t.Fatal("the readable file must analyse cleanly")
	}
}

func TestAnalyzeDirHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeDir(ctx, "testdata", DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	res, err := AnalyzeDir(context.Background(), t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 0 || res.DiagnosticCount() != 0 {
		t.Fatalf("expected an empty result, got %+v", res)
	}
}
