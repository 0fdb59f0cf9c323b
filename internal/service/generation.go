package service

import (
	"strings"
	"sync"
)

// Generations hands out monotonically increasing tokens per key. A result
// may be committed only while its token is still the latest for the key,
// so a slow response cannot overwrite a newer one.
type Generations struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewGenerations() *Generations {
	return &Generations{gens: make(map[string]uint64)}
}

// Begin starts a new generation for key and returns its token.
func (g *Generations) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[key]++
	return g.gens[key]
}

func (g *Generations) IsCurrent(key string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[key] == token
}

// Invalidate supersedes every outstanding token for key.
func (g *Generations) Invalidate(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[key]++
}

// InvalidatePrefix supersedes the tokens of every key starting with prefix.
func (g *Generations) InvalidatePrefix(prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.gens {
		if strings.HasPrefix(k, prefix) {
			g.gens[k]++
		}
	}
}

// InvalidateAll supersedes every outstanding token.
func (g *Generations) InvalidateAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.gens {
		g.gens[k]++
	}
}
