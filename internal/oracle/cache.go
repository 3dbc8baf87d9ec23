package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DiskCache wraps an Oracle, persisting each successful AddMultistage
// response to a JSON file under dir, keyed by a hash of the call's inputs.
// Grounded on theRebelliousNerd-codenerd/internal/world.FileCache's
// load-on-construction, save-when-dirty shape, generalized from file-hash
// metadata to oracle responses.
type DiskCache struct {
	next Oracle
	dir  string

	mu      sync.Mutex
	entries map[string]string
}

// NewDiskCache loads any cached entries already present under dir (created
// lazily on the first write) and wraps next with them.
func NewDiskCache(next Oracle, dir string) *DiskCache {
	c := &DiskCache{next: next, dir: dir, entries: map[string]string{}}
	c.load()
	return c
}

func (c *DiskCache) load() {
	data, err := os.ReadFile(c.path())
	if err != nil {
		return // absent or unreadable cache: start empty, never fatal
	}
	_ = json.Unmarshal(data, &c.entries)
}

func (c *DiskCache) save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(), data, 0o644)
}

func (c *DiskCache) path() string {
	return filepath.Join(c.dir, "oracle-responses.json")
}

// AddMultistage returns the cached response for this exact (recipeText,
// scripts) pair if present, otherwise delegates to next and caches a
// successful result.
func (c *DiskCache) AddMultistage(ctx context.Context, recipeText string, scripts []ScriptInvocation) (string, error) {
	key := cacheKey(recipeText, scripts)

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	resp, err := c.next.AddMultistage(ctx, recipeText, scripts)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = resp
	saveErr := c.save()
	c.mu.Unlock()
	if saveErr != nil {
		slog.Warn("oracle: failed to persist response cache", "error", saveErr)
	}

	return resp, nil
}

func cacheKey(recipeText string, scripts []ScriptInvocation) string {
	h := sha256.New()
	h.Write([]byte(recipeText))
	for _, s := range scripts {
		h.Write([]byte{0})
		h.Write([]byte(s.Command))
		h.Write([]byte{0})
		h.Write([]byte(s.Script))
	}
	return hex.EncodeToString(h.Sum(nil))
}
