package terrain

import (
	"sync"

	"github.com/zyedidia/generic/mapset"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

// ClearedSet is an in-memory record of cleared dungeon entrances. It is safe
// for concurrent use.
type ClearedSet struct {
	mu      sync.RWMutex
	cleared mapset.Set[geom.Point]
}

// NewClearedSet returns an empty set.
func NewClearedSet() *ClearedSet {
	return &ClearedSet{cleared: mapset.New[geom.Point]()}
}

// MarkCleared records entrance as cleared.
func (s *ClearedSet) MarkCleared(entrance geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared.Put(entrance)
}

// IsCleared reports whether entrance has been cleared. Its method value is a
// ClearedFunc.
func (s *ClearedSet) IsCleared(entrance geom.Point) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleared.Has(entrance)
}

// Score returns the number of cleared entrances.
func (s *ClearedSet) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleared.Size()
}
