package engine

import (
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/core"
)

// TypeOf returns the component type descriptor of T
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// valueType returns T's descriptor, false when T is itself a pointer.
// Components are stored as *T, so a pointer T would name the element type's table
// while asserting a different pointer type.
func valueType[T any]() (reflect.Type, bool) {
	t := reflect.TypeFor[T]()
	return t, t.Kind() != reflect.Pointer
}

// Result is the typed form of SearchResult
type Result[T any] struct {
	Entity    core.Entity
	Component *T
}

// Add attaches c to e and returns it, failing with ErrDuplicateComponent if e already has a T
func Add[T any](em *EntityManager, e core.Entity, c *T) (*T, error) {
	t, ok := valueType[T]()
	if !ok {
		return nil, eris.Wrapf(ErrInvalidComponent, "pointer component type %s", t)
	}
	if c == nil {
		return nil, eris.Wrapf(ErrInvalidComponent, "nil %s", t)
	}
	if _, err := em.AddComponent(e, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddNew attaches a zero-valued T to e and returns it
func AddNew[T any](em *EntityManager, e core.Entity) (*T, error) {
	return Add(em, e, new(T))
}

// Get returns e's T; a miss is (nil, false)
func Get[T any](em *EntityManager, e core.Entity) (*T, bool) {
	t, ok := valueType[T]()
	if !ok {
		return nil, false
	}
	val, ok := em.GetComponent(e, t)
	if !ok {
		return nil, false
	}
	c, ok := val.(*T)
	return c, ok
}

// Has reports whether e stores a T
func Has[T any](em *EntityManager, e core.Entity) bool {
	t, ok := valueType[T]()
	return ok && em.HasComponent(e, t)
}

// Remove deletes e's T if present
func Remove[T any](em *EntityManager, e core.Entity) {
	if t, ok := valueType[T](); ok {
		em.RemoveComponent(e, t)
	}
}

// Search is the typed form of EntityManager.Search
// Pointer T matches nothing.
func Search[T any](em *EntityManager, includeDisabled bool) []Result[T] {
	t, ok := valueType[T]()
	if !ok {
		return []Result[T]{}
	}
	raw := em.Search(t, includeDisabled)
	result := make([]Result[T], 0, len(raw))
	for _, r := range raw {
		if c, ok := r.Component.(*T); ok {
			result = append(result, Result[T]{Entity: r.Entity, Component: c})
		}
	}
	return result
}

// First returns one effectively active T, for singleton components such as input state
func First[T any](em *EntityManager) (Result[T], bool) {
	results := Search[T](em, false)
	if len(results) == 0 {
		return Result[T]{}, false
	}
	return results[0], true
}
