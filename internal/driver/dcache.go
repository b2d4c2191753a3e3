package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"minic/internal/diag"
	"minic/internal/source"
)

// bump when cachePayload changes shape or analysis output changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// Cache stores the diagnostics of analysed files on disk, keyed by the
// content hash and the options that influence the output. Trees are not
// cached. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema      uint16
	Fatal       bool
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedFix struct {
	Title string
	Edits []cachedNote // Msg holds the replacement text
}

// OpenCache opens (creating if needed) the cache rooted at dir. An empty dir
// selects $XDG_CACHE_HOME/minic or ~/.cache/minic.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "minic")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "diags", hex.EncodeToString(key[:])+".mp")
}

// put writes payload atomically through a temp file.
func (c *Cache) put(key Digest, payload *cachePayload) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

func (c *Cache) get(key Digest, out *cachePayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == cacheSchemaVersion, nil
}

// Empty reports whether the cache holds no entries.
func (c *Cache) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, err := os.ReadDir(filepath.Join(c.dir, "diags"))
	return err != nil || len(entries) == 0
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}

// cacheKey hashes the schema, the diagnostic cap and the normalised content.
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	var hdr [10]byte
	binary.LittleEndian.PutUint16(hdr[:2], cacheSchemaVersion)
	binary.LittleEndian.PutUint64(hdr[2:], uint64(max(opts.MaxDiagnostics, 0)))
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(file.Hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// lookup rebuilds a Result from a cached entry. Unreadable entries count as
// misses.
func (c *Cache) lookup(key Digest, fs *source.FileSet, file *source.File, maxDiagnostics int) (*Result, bool) {
	var payload cachePayload
	if ok, err := c.get(key, &payload); !ok || err != nil {
		return nil, false
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag, File: file}
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	for _, d := range payload.Diagnostics {
		var notes []diag.Note
		for _, n := range d.Notes {
			notes = append(notes, diag.Note{Span: span(n.Start, n.End), Msg: n.Msg})
		}
		var fixes []diag.Fix
		for _, f := range d.Fixes {
			fix := diag.Fix{Title: f.Title}
			for _, e := range f.Edits {
				fix.Edits = append(fix.Edits, diag.FixEdit{Span: span(e.Start, e.End), NewText: e.Msg})
			}
			fixes = append(fixes, fix)
		}
		reporter.Report(diag.Code(d.Code), diag.Severity(d.Severity), span(d.Start, d.End), d.Message, notes, fixes)
	}
	return &Result{
		FileSet: fs,
		File:    file,
		Bag:     bag,
		Fatal:   payload.Fatal,
		Cached:  true,
	}, true
}

func (c *Cache) store(key Digest, res *Result) error {
	payload := cachePayload{Schema: cacheSchemaVersion, Fatal: res.Fatal}
	for _, d := range res.Diagnostics() {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			fix := cachedFix{Title: f.Title}
			for _, e := range f.Edits {
				fix.Edits = append(fix.Edits, cachedNote{Start: e.Span.Start, End: e.Span.End, Msg: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, fix)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return c.put(key, &payload)
}
