package engine

import (
	"log"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
)

type systemEntry struct {
	sys     System
	typ     reflect.Type
	group   SystemGroup
	created bool // OnCreate has run for this instance
	active  bool // Present in its group's enabled list
}

// SystemManager registers systems, binds them to groups and dispatches per-group updates.
//
// Systems are addressed by type. Lookup returns the first registered instance whose dynamic
// type is the requested type, or implements it when it is an interface type; register at most
// one instance per concrete type.
//
// Not safe for concurrent use. Update must not be called while another Update is running.
type SystemManager struct {
	systems  []*systemEntry
	enabled  [groupCount][]*systemEntry
	groups   map[reflect.Type]SystemGroup
	updating bool
}

// NewSystemManager creates an empty manager
func NewSystemManager() *SystemManager {
	return &SystemManager{
		systems: make([]*systemEntry, 0, 16),
		groups:  make(map[reflect.Type]SystemGroup),
	}
}

// SetGroup binds a concrete system type to g ahead of registration.
// Rebinding to the same group is a no-op; a different group fails with ErrGroupConflict.
func (sm *SystemManager) SetGroup(t reflect.Type, g SystemGroup) error {
	if !g.Valid() {
		return eris.Wrapf(ErrUnknownGroup, "cannot bind %s to group %d", t, int(g))
	}
	if t == nil {
		return eris.Wrap(ErrInvalidSystem, "nil system type")
	}
	t = systemKey(t)
	if bound, ok := sm.groups[t]; ok && bound != g {
		return eris.Wrapf(ErrGroupConflict, "%s is bound to %s, cannot rebind to %s", t, bound, g)
	}
	sm.groups[t] = g
	return nil
}

// Group returns the group bound to a system type
func (sm *SystemManager) Group(t reflect.Type) (SystemGroup, bool) {
	if t == nil {
		return 0, false
	}
	g, ok := sm.groups[systemKey(t)]
	return g, ok
}

// AddSystem registers s in the Added state. Its group is resolved from an existing binding,
// then a declared Group(), then DefaultGroup, and bound permanently to its concrete type.
func (sm *SystemManager) AddSystem(s System) error {
	if s == nil {
		return eris.Wrap(ErrInvalidSystem, "nil system")
	}
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return eris.Wrapf(ErrInvalidSystem, "%s must be a non-nil pointer", v.Type())
	}

	for _, entry := range sm.systems {
		if entry.sys == s {
			return eris.Wrapf(ErrDuplicateSystem, "instance of %s already registered", entry.typ)
		}
	}

	typ := v.Type()
	group, err := sm.resolveGroup(typ, s)
	if err != nil {
		return err
	}

	sm.systems = append(sm.systems, &systemEntry{sys: s, typ: typ, group: group})
	log.Printf("system: added %s (group %s)", typ, group)
	return nil
}

// HasSystem reports whether a system matching t is registered
func (sm *SystemManager) HasSystem(t reflect.Type) bool {
	_, ok := sm.find(t)
	return ok
}

// GetSystem returns the first registered system matching t
func (sm *SystemManager) GetSystem(t reflect.Type) (System, bool) {
	entry, ok := sm.find(t)
	if !ok {
		return nil, false
	}
	return entry.sys, true
}

// IsEnabled reports whether the system matching t is in its group's enabled list
func (sm *SystemManager) IsEnabled(t reflect.Type) bool {
	entry, ok := sm.find(t)
	return ok && entry.active
}

// EnableSystem appends the system to its group's enabled list, running OnCreate on the
// first enable of the instance and OnEnabled on every enable. Already enabled is a no-op.
func (sm *SystemManager) EnableSystem(t reflect.Type) error {
	entry, ok := sm.find(t)
	if !ok {
		return eris.Wrapf(ErrMissingSystem, "cannot enable %s", t)
	}
	if entry.active {
		return nil
	}

	sm.enabled[entry.group] = append(sm.enabled[entry.group], entry)
	entry.active = true

	if !entry.created {
		entry.sys.OnCreate()
		entry.created = true
	}
	entry.sys.OnEnabled()
	return nil
}

// DisableSystem removes the system from its group's enabled list and runs OnDisabled.
// Not enabled is a no-op.
func (sm *SystemManager) DisableSystem(t reflect.Type) error {
	entry, ok := sm.find(t)
	if !ok {
		return eris.Wrapf(ErrMissingSystem, "cannot disable %s", t)
	}
	if !entry.active {
		return nil
	}

	sm.unlink(entry)
	entry.sys.OnDisabled()
	return nil
}

// UpdatePosition moves an enabled system to index within its group's enabled list
func (sm *SystemManager) UpdatePosition(t reflect.Type, index int) error {
	entry, ok := sm.find(t)
	if !ok {
		return eris.Wrapf(ErrMissingSystem, "cannot reposition %s", t)
	}
	if !entry.active {
		return eris.Wrapf(ErrSystemNotEnabled, "%s must be enabled to update its position", t)
	}

	list := sm.enabled[entry.group]
	if index < 0 || index >= len(list) {
		return eris.Wrapf(ErrInvalidPosition, "index %d outside [0, %d) for group %s", index, len(list), entry.group)
	}

	current := slices.Index(list, entry)
	list = slices.Delete(list, current, current+1)
	sm.enabled[entry.group] = slices.Insert(list, index, entry)
	return nil
}

// RemoveSystem unregisters the system, drops it from its enabled list and runs OnDestroy
// unconditionally. The instance is unusable afterwards. The type's group binding is kept.
func (sm *SystemManager) RemoveSystem(t reflect.Type) error {
	entry, ok := sm.find(t)
	if !ok {
		return eris.Wrapf(ErrMissingSystem, "cannot remove %s", t)
	}

	sm.systems = slices.DeleteFunc(sm.systems, func(e *systemEntry) bool { return e == entry })
	if entry.active {
		sm.unlink(entry)
	}
	entry.created = false

	entry.sys.OnDestroy()
	log.Printf("system: removed %s", entry.typ)
	return nil
}

// Update runs OnUpdate for every system enabled in group, in list order.
// The list is snapshotted: systems enabled by a hook start on the next call, and systems
// disabled or removed by a hook are skipped if not yet reached.
func (sm *SystemManager) Update(group SystemGroup) error {
	if !group.Valid() {
		return eris.Wrapf(ErrUnknownGroup, "group %d", int(group))
	}
	if sm.updating {
		return eris.Wrapf(ErrReentrantUpdate, "update of %s", group)
	}
	sm.updating = true
	defer func() { sm.updating = false }()

	snapshot := slices.Clone(sm.enabled[group])
	for _, entry := range snapshot {
		if !entry.active || entry.group != group {
			continue
		}
		entry.sys.OnUpdate()
	}
	return nil
}

// UpdateAll runs Update for every group in Groups order, one full tick
func (sm *SystemManager) UpdateAll() error {
	for _, g := range Groups {
		if err := sm.Update(g); err != nil {
			return err
		}
	}
	return nil
}

// Enabled returns the concrete types enabled in group, in update order
func (sm *SystemManager) Enabled(group SystemGroup) []reflect.Type {
	if !group.Valid() {
		return nil
	}
	result := make([]reflect.Type, len(sm.enabled[group]))
	for i, entry := range sm.enabled[group] {
		result[i] = entry.typ
	}
	return result
}

// Systems returns every registered system in registration order
func (sm *SystemManager) Systems() []System {
	result := make([]System, len(sm.systems))
	for i, entry := range sm.systems {
		result[i] = entry.sys
	}
	return result
}

// SystemOf returns the registered system of type T
func SystemOf[T System](sm *SystemManager) (T, bool) {
	var zero T
	s, ok := sm.GetSystem(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := s.(T)
	return typed, ok
}

// SystemType returns the type key of T for SystemManager calls
func SystemType[T System]() reflect.Type {
	return reflect.TypeFor[T]()
}

func (sm *SystemManager) resolveGroup(typ reflect.Type, s System) (SystemGroup, error) {
	bound, isBound := sm.groups[typ]

	if declared, ok := s.(Grouped); ok {
		g := declared.Group()
		if !g.Valid() {
			return 0, eris.Wrapf(ErrUnknownGroup, "%s declares group %d", typ, int(g))
		}
		if isBound && bound != g {
			return 0, eris.Wrapf(ErrGroupConflict, "%s declares %s but is bound to %s", typ, g, bound)
		}
		sm.groups[typ] = g
		return g, nil
	}

	if isBound {
		return bound, nil
	}
	sm.groups[typ] = DefaultGroup
	return DefaultGroup, nil
}

func (sm *SystemManager) find(t reflect.Type) (*systemEntry, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Interface {
		for _, entry := range sm.systems {
			if entry.typ.Implements(t) {
				return entry, true
			}
		}
		return nil, false
	}

	t = systemKey(t)
	for _, entry := range sm.systems {
		if entry.typ == t {
			return entry, true
		}
	}
	return nil, false
}

func (sm *SystemManager) unlink(entry *systemEntry) {
	sm.enabled[entry.group] = slices.DeleteFunc(sm.enabled[entry.group], func(e *systemEntry) bool { return e == entry })
	entry.active = false
}

// systemKey maps a struct type to the pointer type systems are registered under
func systemKey(t reflect.Type) reflect.Type {
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		return reflect.PointerTo(t)
	}
	return t
}
