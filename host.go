package emitcore

import (
	"os"
	"path/filepath"
	"sync"
)

// Host abstracts the filesystem WriteOutput writes generated source files
// to, so tests and tools can substitute an in-memory implementation for the
// real disk.
type Host interface {
	WriteFile(path string, contents []byte) error
}

// DiskHost writes files under Root, creating parent directories as needed.
type DiskHost struct {
	Root string
	Perm os.FileMode
}

// NewDiskHost returns a DiskHost rooted at root with mode 0o644 files.
func NewDiskHost(root string) *DiskHost {
	return &DiskHost{Root: root, Perm: 0o644}
}

func (h *DiskHost) WriteFile(path string, contents []byte) error {
	full := path
	if h.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(h.Root, path)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	perm := h.Perm
	if perm == 0 {
		perm = 0o644
	}
	return os.WriteFile(full, contents, perm)
}

// MemHost collects written files in memory, for tests that assert on
// generated output without touching the real filesystem.
type MemHost struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// NewMemHost returns an empty MemHost.
func NewMemHost() *MemHost { return &MemHost{Files: make(map[string][]byte)} }

func (h *MemHost) WriteFile(path string, contents []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := make([]byte, len(contents))
	copy(buf, contents)
	h.Files[path] = buf
	return nil
}

// Get returns the contents previously written at path, and whether any were.
func (h *MemHost) Get(path string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.Files[path]
	return b, ok
}
