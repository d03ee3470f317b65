package preview

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

// ClearedStore records cleared dungeon entrances. *database.Database
// implements it; NewMemoryStore returns one without persistence. It must be
// safe for concurrent use.
type ClearedStore interface {
	MarkCleared(entrance geom.Point) (bool, error)
	IsCleared(entrance geom.Point) (bool, error)
	Score() (int, error)
}

type memoryStore struct {
	set *terrain.ClearedSet
}

// NewMemoryStore returns a ClearedStore backed by a terrain.ClearedSet.
func NewMemoryStore() ClearedStore {
	return &memoryStore{set: terrain.NewClearedSet()}
}

func (m *memoryStore) MarkCleared(entrance geom.Point) (bool, error) {
	first := !m.set.IsCleared(entrance)
	m.set.MarkCleared(entrance)
	return first, nil
}

func (m *memoryStore) IsCleared(entrance geom.Point) (bool, error) {
	return m.set.IsCleared(entrance), nil
}

func (m *memoryStore) Score() (int, error) {
	return m.set.Score(), nil
}
