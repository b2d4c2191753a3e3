package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	cleanSource = "int main() {\n    return 0;\n}\n"
	// line 2 lacks its semicolon
	brokenSource = "int main() {\n    int x = 1\n    return x;\n}\n"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckCleanFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", cleanSource)
	res := run(t, "check", path)
	if res.code != 0 || res.stdout != "" {
		t.Fatalf("check = %d, stdout %q, stderr %q", res.code, res.stdout, res.stderr)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)
	res := run(t, "check", path)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr %q)", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "main.c:2:14: error: expected ';' after declaration") {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func TestCheckPrettyFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)
	res := run(t, "check", "--format", "pretty", "--color", "off", path)
	if res.code != 1 {
		t.Fatalf("exit code = %d", res.code)
	}
	for _, want := range []string{"SYN2002", "int x = 1", "help: insert ';'"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("pretty output missing %q:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "\x1b[") {
		t.Error("--color off should not emit escape codes")
	}
}

func TestCheckJSONFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)
	res := run(t, "check", "--format", "json", path)
	if res.code != 1 {
		t.Fatalf("exit code = %d", res.code)
	}
	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 || out.Diagnostics[0].Code != "SYN2002" {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestCheckMaxDiagnostics(t *testing.T) {
	src := "int main() {\n    int a = 1\n    int b = 2\n    int c = 3\n    return 0;\n}\n"
	path := writeFile(t, t.TempDir(), "main.c", src)

	all := run(t, "check", path)
	capped := run(t, "check", "--max-diagnostics", "1", path)
	if n := strings.Count(all.stdout, "\n"); n != 3 {
		t.Errorf("expected 3 diagnostics, got %d:\n%s", n, all.stdout)
	}
	if n := strings.Count(capped.stdout, "\n"); n != 1 {
		t.Errorf("expected 1 diagnostic with the cap, got %d:\n%s", n, capped.stdout)
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", cleanSource)
	writeFile(t, dir, "b.c", brokenSource)
	writeFile(t, dir, "sub/c.c", brokenSource)
	writeFile(t, dir, "notes.txt", "not C at all {")

	res := run(t, "check", "--ui", "off", "--jobs", "2", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostics, got:\n%s", res.stdout)
	}
	if !strings.Contains(lines[0], "b.c:2:14") || !strings.Contains(lines[1], "c.c:2:14") {
		t.Errorf("diagnostics should follow path order:\n%s", res.stdout)
	}

	excluded := run(t, "check", "--ui", "off", "--exclude", "sub/**", "--exclude", "b.c", dir)
	if excluded.code != 0 || excluded.stdout != "" {
		t.Errorf("excluded run = %d:\n%s", excluded.code, excluded.stdout)
	}
}

func TestCheckUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "minic.toml", "[output]\nformat = \"json\"\n\n[analysis]\nmax_diagnostics = 5\n")
	path := writeFile(t, dir, "src/main.c", brokenSource)

	res := run(t, "check", path)
	if res.code != 1 || !strings.HasPrefix(res.stdout, "{") {
		t.Fatalf("expected JSON from minic.toml, got %d:\n%s", res.code, res.stdout)
	}

	// flags win over the file
	res = run(t, "check", "--format", "short", path)
	if strings.HasPrefix(res.stdout, "{") {
		t.Errorf("--format short should override the config:\n%s", res.stdout)
	}
}

func TestCheckBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.toml", "[output]\nformat = \"xml\"\n")
	path := writeFile(t, dir, "main.c", cleanSource)

	res := run(t, "check", "--config", cfg, path)
	if res.code != 2 || !strings.Contains(res.stderr, "xml") {
		t.Errorf("bad config = %d, stderr %q", res.code, res.stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", cleanSource)
	tests := []struct {
		name   string
		args   []string
		substr string
	}{
		{"format", []string{"check", "--format", "xml", path}, "unsupported format"},
		{"missing file", []string{"check", filepath.Join(t.TempDir(), "nope.c")}, "failed to stat"},
		{"ui mode", []string{"check", "--ui", "sometimes", path}, "invalid --ui value"},
		{"trace level", []string{"check", "--trace-level", "loud", path}, "invalid trace level"},
		{"no args", []string{"parse"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.args...)
			if res.code != 2 || !strings.Contains(res.stderr, tt.substr) {
				t.Errorf("%v = %d, stderr %q", tt.args, res.code, res.stderr)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", cleanSource)
	res := run(t, "tokenize", path)
	if res.code != 0 {
		t.Fatalf("tokenize = %d, stderr %q", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "LINE:COL") || !strings.Contains(res.stdout, "EOF") {
		t.Errorf("unexpected token listing:\n%s", res.stdout)
	}

	res = run(t, "tokenize", "--format", "json", path)
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &tokens); err != nil || len(tokens) == 0 {
		t.Fatalf("invalid token JSON (%v):\n%s", err, res.stdout)
	}
}

func TestTokenizeReportsLexicalErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "int x = 1 @ 2;\n")
	res := run(t, "tokenize", "--color", "off", path)
	if res.code != 1 {
		t.Fatalf("tokenize = %d", res.code)
	}
	if !strings.Contains(res.stderr, "LEX") || !strings.Contains(res.stdout, "LINE:COL") {
		t.Errorf("stdout:\n%s\nstderr:\n%s", res.stdout, res.stderr)
	}
}

func TestParse(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)
	res := run(t, "parse", "--color", "off", path)
	if res.code != 1 {
		t.Fatalf("parse = %d", res.code)
	}
	for _, want := range []string{"Program", "FunctionDecl", "Return"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("tree missing %q:\n%s", want, res.stdout)
		}
	}
	if !strings.Contains(res.stderr, "SYN2002") {
		t.Errorf("diagnostics should go to stderr:\n%s", res.stderr)
	}

	res = run(t, "parse", "--format", "json", path)
	var tree map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &tree); err != nil {
		t.Fatalf("invalid tree JSON: %v\n%s", err, res.stdout)
	}
}

func TestCacheAndClean(t *testing.T) {
	cacheDir := t.TempDir()
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)

	first := run(t, "check", "--cache", "--cache-dir", cacheDir, path)
	second := run(t, "check", "--cache", "--cache-dir", cacheDir, path)
	if first.code != 1 || second.code != 1 || first.stdout != second.stdout {
		t.Fatalf("cached run differs:\n%s\n---\n%s", first.stdout, second.stdout)
	}

	res := run(t, "clean", "--cache-dir", cacheDir, filepath.Dir(path))
	if res.code != 0 || !strings.Contains(res.stdout, "cleared") {
		t.Fatalf("clean = %d, stdout %q, stderr %q", res.code, res.stdout, res.stderr)
	}
	res = run(t, "clean", "--cache-dir", cacheDir, filepath.Dir(path))
	if !strings.Contains(res.stdout, "cache is empty") {
		t.Errorf("second clean: %q", res.stdout)
	}
}

func TestTimingsAndTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", cleanSource)
	traceFile := filepath.Join(dir, "trace.ndjson")

	res := run(t, "check", "--timings", "--trace", traceFile, "--trace-level", "debug", path)
	if res.code != 0 {
		t.Fatalf("check = %d, stderr %q", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "timings:") {
		t.Errorf("expected a timing table on stderr:\n%s", res.stderr)
	}
	data, err := os.ReadFile(traceFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("trace file is empty")
	}
}

func TestVersion(t *testing.T) {
	res := run(t, "version", "--format", "json", "--full")
	if res.code != 0 {
		t.Fatalf("version = %d", res.code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "minic" || payload.Version == "" || payload.GitCommit == "" {
		t.Errorf("unexpected payload: %+v", payload)
	}

	res = run(t, "version", "--color", "off")
	if !strings.HasPrefix(res.stdout, "minic ") {
		t.Errorf("unexpected banner %q", res.stdout)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Error("auto mode should stay off for non-terminals")
	}
	if !shouldUseTUI(uiModeOn, &bytes.Buffer{}) {
		t.Error("on mode should force the UI")
	}
}

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer
	if !resolveColor("on", &buf) || resolveColor("off", &buf) || resolveColor("auto", &buf) {
		t.Error("unexpected color resolution")
	}
}

func TestFix(t *testing.T) {
	src := "int main() {\n    int x = 1\n    foo(1, 2;\n    return x;\n}\n"
	fixed := "int main() {\n    int x = 1;\n    foo(1, 2);\n    return x;\n}\n"

	path := writeFile(t, t.TempDir(), "main.c", src)
	res := run(t, "fix", "--dry-run", "--all", path)
	if res.code != 0 || !strings.Contains(res.stdout, "Applied 2 fix(es)") || !strings.Contains(res.stdout, "+    foo(1, 2);\n") {
		t.Fatalf("dry run = %d:\n%s%s", res.code, res.stdout, res.stderr)
	}
	if data, _ := os.ReadFile(path); string(data) != src {
		t.Fatal("dry run wrote the file")
	}

	res = run(t, "fix", "--code", "UnclosedParen", path)
	if res.code != 0 || !strings.Contains(res.stdout, "Applied 1 fix(es)") {
		t.Fatalf("fix --code = %d:\n%s", res.code, res.stdout)
	}
	res = run(t, "fix", path)
	if res.code != 0 {
		t.Fatalf("fix = %d", res.code)
	}
	if data, _ := os.ReadFile(path); string(data) != fixed {
		t.Errorf("file after fixes:\n%s", data)
	}
	if res := run(t, "check", path); res.code != 0 {
		t.Errorf("fixed file still fails the check:\n%s", res.stdout)
	}

	res = run(t, "fix", path)
	if !strings.Contains(res.stdout, "No applicable fixes found.") {
		t.Errorf("clean file: %q", res.stdout)
	}
}

func TestFixFlagErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", brokenSource)
	for _, args := range [][]string{
		{"fix", "--all", "--once", path},
		{"fix", "--code", "SYN2002", "--all", path},
		{"fix", "--code", "NotACode", path},
	} {
		if res := run(t, args...); res.code != 2 {
			t.Errorf("%v = %d", args, res.code)
		}
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", cleanSource)
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	if res := run(t, "check", "--cpu-profile", cpu, "--mem-profile", mem, path); res.code != 0 {
		t.Fatalf("check = %d, stderr %q", res.code, res.stderr)
	}
	for _, p := range []string{cpu, mem} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("profile %s missing: %v", p, err)
		}
	}
}
