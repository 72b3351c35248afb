package engine

import (
	"reflect"

	"github.com/lixenwraith/grove/core"
)

// componentTable stores every instance of one component type.
// Uses sparse set pattern: map for O(1) lookup, dense slice for iteration.
// Values are always pointers (*T) so callers mutate stored state in place.
type componentTable struct {
	typ        reflect.Type
	components map[core.Entity]any
	entities   []core.Entity // Entities owning this component, swap-remove order
}

func newComponentTable(t reflect.Type) *componentTable {
	return &componentTable{
		typ:        t,
		components: make(map[core.Entity]any),
		entities:   make([]core.Entity, 0, 64),
	}
}

// insert stores val for e, returning false if e already has a record
func (t *componentTable) insert(e core.Entity, val any) bool {
	if _, exists := t.components[e]; exists {
		return false
	}
	t.components[e] = val
	t.entities = append(t.entities, e)
	return true
}

func (t *componentTable) get(e core.Entity) (any, bool) {
	val, ok := t.components[e]
	return val, ok
}

func (t *componentTable) has(e core.Entity) bool {
	_, ok := t.components[e]
	return ok
}

// remove deletes the record of e, returning whether one existed
func (t *componentTable) remove(e core.Entity) bool {
	if _, exists := t.components[e]; !exists {
		return false
	}
	delete(t.components, e)
	for i, entity := range t.entities {
		if entity == e {
			t.entities[i] = t.entities[len(t.entities)-1]
			t.entities = t.entities[:len(t.entities)-1]
			break
		}
	}
	return true
}

// ownerOf scans for the entity whose stored pointer is identical to instance
func (t *componentTable) ownerOf(instance any) (core.Entity, bool) {
	for _, e := range t.entities {
		if t.components[e] == instance {
			return e, true
		}
	}
	return 0, false
}

// all returns a copy of the owning entities
func (t *componentTable) all() []core.Entity {
	result := make([]core.Entity, len(t.entities))
	copy(result, t.entities)
	return result
}

func (t *componentTable) count() int {
	return len(t.entities)
}

func (t *componentTable) clear() {
	t.components = make(map[core.Entity]any)
	t.entities = make([]core.Entity, 0, 64)
}
