package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
	maxFuzzInput = 1 << 16  // 64 KiB
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addReadmeSeeds(f)
	addEdgeSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".c" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addReadmeSeeds adds every ```c block of the repository README.
func addReadmeSeeds(f *testing.F) {
	path := filepath.Join("..", "..", "README.md")
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, snippet := range fencedBlocks(data, "c") {
		if len(snippet) > 0 {
			f.Add(clampSeed(snippet))
		}
	}
}

// fencedBlocks returns the contents of the fenced code blocks of a Markdown
// document whose info string names lang.
func fencedBlocks(doc []byte, lang string) [][]byte {
	root := goldmark.DefaultParser().Parse(text.NewReader(doc))
	var blocks [][]byte
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || string(fcb.Language(doc)) != lang {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			buf.Write(seg.Value(doc))
		}
		blocks = append(blocks, buf.Bytes())
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func addEdgeSeeds(f *testing.F) {
	for _, s := range []string{
		"",
		"int main() { return 0; }\n",
		"int main() {\n    int x = 10\n    return x;\n}\n",
		"int main() {\n    if (x > 5 {\n        x = 1;\n    }\n}\n",
		"int y = x = = 5;",
		"int 123abc = 5;",
		"int main() { int a = 1 @ 2; }",
		"char* s = \"never closed",
		"int x; /* never closed",
		"char c = 'ab",
		"int f() { { { {",
		"(((((((((((",
		"----------!!!!!!!!x",
		"}}}}}};;;;;))))",
		"for (;;) while (1) if (x) else",
		"int main() { return f(1, 2, g(3, h(4 ; }",
		"\xef\xbb\xbfint x;\r\n",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
