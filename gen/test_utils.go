package gen

import (
	"bytes"
	"io"
	"sort"
	"sync"
	"testing"
)

// TestCtx is an in memory GeneratorContext, only meant to be used for tests.
//
type TestCtx struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer
}

// NewTestCtx returns a ready to use TestCtx.
func NewTestCtx() *TestCtx {
	return &TestCtx{files: make(map[string]*bytes.Buffer)}
}

// Open returns the buffer for filename, creating it on first open.
func (ctx *TestCtx) Open(filename string) (io.WriteCloser, error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	b, ok := ctx.files[filename]
	if !ok {
		b = new(bytes.Buffer)
		ctx.files[filename] = b
	}
	return nopCloser{b}, nil
}

// File returns the contents written to filename.
func (ctx *TestCtx) File(filename string) []byte {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	b, ok := ctx.files[filename]
	if !ok {
		return nil
	}
	return b.Bytes()
}

// Files returns the names of every file opened, sorted.
func (ctx *TestCtx) Files() []string {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	names := make([]string, 0, len(ctx.files))
	for name := range ctx.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nopCloser struct{ io.Writer }

// Close always returns nil.
func (nopCloser) Close() error { return nil }

// CompareBytes compares generated output to the expected output,
// reporting the first byte that differs along with its line number.
func CompareBytes(t *testing.T, ex, out []byte) {
	t.Helper()
	if bytes.Equal(out, ex) {
		return
	}

	line, col := 1, 1
	n := len(out)
	if len(ex) < n {
		n = len(ex)
	}
	for i := 0; i < n; i++ {
		if ex[i] != out[i] {
			t.Log(string(out))
			t.Fatalf("expected: %q but got: %q at %d:%d", ex[i], out[i], line, col)
		}
		col++
		if out[i] == '\n' {
			line++
			col = 1
		}
	}
	t.Log(string(out))
	t.Fatalf("expected %d bytes but got: %d", len(ex), len(out))
}
