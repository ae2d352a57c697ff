// Package jsoncache keeps a JSON document addressed by dotted paths and fills
// {$path} and {$$path} placeholders in byte streams from it.
//
// Values are inserted with Insert, InsertBulk, Merge or MatchRegex. The first
// substitution after a change serializes the whole document once, indexing the
// byte range of every value, and compiles one Aho-Corasick automaton over all
// placeholders. Later substitutions reuse that generation until the next
// change, so each one is a single pass over its input whatever the size of the
// document.
package jsoncache

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Options configures a DataCache.
type Options struct {
	// ReservedNames are paths MatchRegex refuses to capture into.
	ReservedNames []string `yaml:"reservedNames" json:"reservedNames"`

	// ChunkSize is the read size used when streaming substitutions.
	// Zero means DefaultChunkSize.
	ChunkSize int `yaml:"chunkSize" json:"chunkSize"`

	// Logger receives debug diagnostics. Nil means slog.Default().
	Logger *slog.Logger `yaml:"-" json:"-"`
}

// DefaultOptions provides default settings for a DataCache.
var DefaultOptions = Options{
	ChunkSize: DefaultChunkSize,
}

// DataCache is a JSON document rooted at an object plus the substitution
// index derived from it.
//
// A DataCache may be used from several goroutines. Mutations drop the current
// generation instead of editing it, so a substitution already running keeps
// reading the document as it was when it started.
type DataCache struct {
	mu       sync.RWMutex
	tree     *Tree
	gen      *generation
	reserved map[string]struct{}
	chunk    int
	logger   *slog.Logger
}

// New returns an empty cache.
func New(opts Options) *DataCache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &DataCache{
		tree:     NewTree(),
		reserved: make(map[string]struct{}, len(opts.ReservedNames)),
		chunk:    opts.ChunkSize,
		logger:   logger.With("component", "jsoncache"),
	}
	if c.chunk <= 0 {
		c.chunk = DefaultChunkSize
	}
	for _, name := range opts.ReservedNames {
		c.reserved[name] = struct{}{}
	}
	return c
}

// Insert stores a copy of value at path. See Tree.Insert for the rules.
func (c *DataCache) Insert(path string, value *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Insert(path, value)
	c.invalidate("insert")
}

// InsertValue converts v with FromValue and inserts it at path.
func (c *DataCache) InsertValue(path string, v any) error {
	n, err := FromValue(v)
	if err != nil {
		return fmt.Errorf("insert %q: %w", path, err)
	}
	c.Insert(path, n)
	return nil
}

// InsertBulk inserts every pair and drops the derived index once at the end.
func (c *DataCache) InsertBulk(pairs []PathValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.InsertBulk(pairs)
	c.invalidate("insert bulk")
}

// Merge deep merges value into the document. See Tree.Merge.
func (c *DataCache) Merge(value *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Merge(value)
	c.invalidate("merge")
}

// Get returns a copy of the node at path.
func (c *DataCache) Get(path string) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.tree.Get(path)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Root returns a copy of the whole document.
func (c *DataCache) Root() *Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Root().Clone()
}

// ReplaceWithCache copies r to w, replacing every {$path} by the compact JSON
// of the value at path (strings without their quotes) and every {$$path} by
// the same text escaped for use inside a JSON string literal. Tokens naming
// no value are copied unchanged.
func (c *DataCache) ReplaceWithCache(r io.Reader, w io.Writer) error {
	g, err := c.current()
	if err != nil {
		return err
	}
	return g.replace(r, w, c.chunk)
}

// ReplaceString is ReplaceWithCache over an in-memory string.
func (c *DataCache) ReplaceString(s string) (string, error) {
	var out bytes.Buffer
	out.Grow(len(s))
	if err := c.ReplaceWithCache(strings.NewReader(s), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Raw returns a copy of the bytes {$path} (or {$$path} when double is set)
// would be replaced with.
func (c *DataCache) Raw(path string, double bool) ([]byte, error) {
	g, err := c.current()
	if err != nil {
		return nil, err
	}
	b, ok := g.raw(path, double)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	return bytes.Clone(b), nil
}

// current returns the index for the current document, building it if a
// mutation dropped the previous one.
func (c *DataCache) current() (*generation, error) {
	c.mu.RLock()
	g := c.gen
	c.mu.RUnlock()
	if g != nil {
		return g, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != nil {
		return c.gen, nil
	}
	g, err := buildGeneration(c.tree.Root())
	if err != nil {
		return nil, err
	}
	c.gen = g
	c.logger.Debug("template generation built",
		slog.Int("paths", len(g.single.Paths)),
		slog.Int("patterns", g.matcher.patterns),
		slog.Int("states", len(g.matcher.states)),
		slog.Int("single_bytes", len(g.single.Buffer)),
		slog.Int("double_bytes", len(g.double.Buffer)))
	return g, nil
}

// invalidate drops the current generation. Callers hold c.mu.
func (c *DataCache) invalidate(op string) {
	if c.gen == nil {
		return
	}
	c.gen = nil
	c.logger.Debug("template generation dropped", slog.String("op", op))
}
