package core

import (
	"reflect"
)

// TypeRegistry assigns a stable, dense TypeID to every distinct type it is shown.
// Ids start at 0, grow by one per new type and are never removed or reassigned.
// Not safe for concurrent use; the engine runs single-threaded ticks.
type TypeRegistry struct {
	ids   map[reflect.Type]TypeID
	types []reflect.Type
}

// NewTypeRegistry creates an empty registry
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		ids:   make(map[reflect.Type]TypeID),
		types: make([]reflect.Type, 0, 16),
	}
}

// GetOrAssign returns the id of t, allocating the next free id on first sight
func (r *TypeRegistry) GetOrAssign(t reflect.Type) TypeID {
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := TypeID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// Register eagerly assigns ids at startup so the table is deterministic regardless of first-use order
func (r *TypeRegistry) Register(types ...reflect.Type) []TypeID {
	ids := make([]TypeID, len(types))
	for i, t := range types {
		ids[i] = r.GetOrAssign(t)
	}
	return ids
}

// Lookup returns the id of t without assigning one
func (r *TypeRegistry) Lookup(t reflect.Type) (TypeID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the type registered under id
func (r *TypeRegistry) Type(id TypeID) (reflect.Type, bool) {
	if int(id) >= len(r.types) {
		return nil, false
	}
	return r.types[id], true
}

// Len returns the number of registered types
func (r *TypeRegistry) Len() int {
	return len(r.types)
}

// Types returns a copy of the table in id order
func (r *TypeRegistry) Types() []reflect.Type {
	result := make([]reflect.Type, len(r.types))
	copy(result, r.types)
	return result
}
