package engine

import (
	"reflect"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/core"
)

// ComponentRef is the canonical handle of one stored component record
type ComponentRef struct {
	Entity core.Entity
	Type   core.TypeID
}

// SearchResult pairs a stored component pointer with its owning entity
type SearchResult struct {
	Entity    core.Entity
	Component any
}

// EntityManager owns entity lifecycle, component storage and the enable overlays.
// Components are stored per type id in componentTables; type ids come from the
// TypeRegistry supplied at construction.
//
// Component arguments follow one convention throughout:
//   - a reflect.Type names the component type (pointer types resolve to their element)
//   - a *T is a concrete instance, stored as-is
//   - a T value is copied into a fresh *T
//
// Not safe for concurrent use.
type EntityManager struct {
	registry *core.TypeRegistry
	tables   []*componentTable // Indexed by core.TypeID, nil until the type is first stored

	lastEntity core.Entity
	epoch      uint64

	disabledEntities   map[core.Entity]struct{}
	disabledComponents map[ComponentRef]struct{}
}

// NewEntityManager creates an empty manager backed by registry.
// A nil registry gets a private one.
func NewEntityManager(registry *core.TypeRegistry) *EntityManager {
	if registry == nil {
		registry = core.NewTypeRegistry()
	}
	return &EntityManager{
		registry:           registry,
		tables:             make([]*componentTable, 0, registry.Len()),
		disabledEntities:   make(map[core.Entity]struct{}),
		disabledComponents: make(map[ComponentRef]struct{}),
	}
}

// Registry exposes the type registry used for table indexing
func (em *EntityManager) Registry() *core.TypeRegistry {
	return em.registry
}

// === Entity lifecycle ===

// CreateEntity allocates the next entity id and attaches the initial components.
// All elements are validated first: an invalid element or two elements resolving to the
// same type fail without allocating an id or storing anything.
func (em *EntityManager) CreateEntity(initial ...any) (core.Entity, error) {
	instances := make([]any, len(initial))
	types := make([]reflect.Type, len(initial))
	seen := make(map[reflect.Type]struct{}, len(initial))

	for i, arg := range initial {
		instance, t, err := resolveComponent(arg)
		if err != nil {
			return 0, eris.Wrapf(err, "initial component %d", i)
		}
		if _, dup := seen[t]; dup {
			return 0, eris.Wrapf(ErrDuplicateComponent, "initial components contain %s twice", t)
		}
		seen[t] = struct{}{}
		instances[i] = instance
		types[i] = t
	}

	em.lastEntity++
	e := em.lastEntity
	for i, instance := range instances {
		em.tableFor(types[i]).insert(e, instance)
	}
	return e, nil
}

// RemoveEntity deletes every component owned by e and clears both overlays for it.
// Unknown or already removed entities are ignored.
func (em *EntityManager) RemoveEntity(e core.Entity) {
	for id, table := range em.tables {
		if table == nil {
			continue
		}
		if table.remove(e) {
			delete(em.disabledComponents, ComponentRef{Entity: e, Type: core.TypeID(id)})
		}
	}
	delete(em.disabledEntities, e)
}

// RemoveAllEntities clears all storage and overlays and resets the id counter.
// Handles retained from before the reset collide with ids handed out afterwards;
// compare Epoch values to detect them.
func (em *EntityManager) RemoveAllEntities() {
	for _, table := range em.tables {
		if table != nil {
			table.clear()
		}
	}
	em.disabledEntities = make(map[core.Entity]struct{})
	em.disabledComponents = make(map[ComponentRef]struct{})
	em.lastEntity = 0
	em.epoch++
}

// Epoch counts RemoveAllEntities calls
func (em *EntityManager) Epoch() uint64 {
	return em.epoch
}

// LastEntity returns the most recently allocated id, 0 if none since the last reset
func (em *EntityManager) LastEntity() core.Entity {
	return em.lastEntity
}

// === Entity enable overlay ===

// IsEntityEnabled reports whether e is enabled; entities are enabled by default
func (em *EntityManager) IsEntityEnabled(e core.Entity) bool {
	_, disabled := em.disabledEntities[e]
	return !disabled
}

// EnableEntity removes e from the disabled set
func (em *EntityManager) EnableEntity(e core.Entity) {
	delete(em.disabledEntities, e)
}

// DisableEntity hides every component of e from default searches without deleting them
func (em *EntityManager) DisableEntity(e core.Entity) {
	em.disabledEntities[e] = struct{}{}
}

// DisableEntitiesByComponent disables every entity currently owning a component of type t
func (em *EntityManager) DisableEntitiesByComponent(t reflect.Type) {
	for _, e := range em.owners(t) {
		em.DisableEntity(e)
	}
}

// EnableEntitiesByComponent enables every entity currently owning a component of type t
func (em *EntityManager) EnableEntitiesByComponent(t reflect.Type) {
	for _, e := range em.owners(t) {
		em.EnableEntity(e)
	}
}

// === Component CRUD ===

// AddComponent attaches typeOrInstance to e and returns the stored pointer.
// Fails with ErrDuplicateComponent if e already has a component of that type.
func (em *EntityManager) AddComponent(e core.Entity, typeOrInstance any) (any, error) {
	instance, t, err := resolveComponent(typeOrInstance)
	if err != nil {
		return nil, err
	}
	if !em.tableFor(t).insert(e, instance) {
		return nil, eris.Wrapf(ErrDuplicateComponent, "entity %d already has a component of type %s", e, t)
	}
	return instance, nil
}

// GetComponent returns the stored pointer of type t for e; a miss is (nil, false)
func (em *EntityManager) GetComponent(e core.Entity, t reflect.Type) (any, bool) {
	table := em.lookupTable(t)
	if table == nil {
		return nil, false
	}
	return table.get(e)
}

// HasComponent reports whether e stores a component of type t
func (em *EntityManager) HasComponent(e core.Entity, t reflect.Type) bool {
	table := em.lookupTable(t)
	return table != nil && table.has(e)
}

// EntityForComponent finds the owner of instance by pointer identity
func (em *EntityManager) EntityForComponent(instance any) (core.Entity, bool) {
	ref, ok := em.RefOf(instance)
	return ref.Entity, ok
}

// Ref returns the handle of e's component of type t if it is stored
func (em *EntityManager) Ref(e core.Entity, t reflect.Type) (ComponentRef, bool) {
	t = componentType(t)
	if t == nil {
		return ComponentRef{}, false
	}
	id, ok := em.registry.Lookup(t)
	if !ok || !em.HasComponent(e, t) {
		return ComponentRef{}, false
	}
	return ComponentRef{Entity: e, Type: id}, true
}

// RefOf resolves a stored instance pointer to its handle.
// Only pointers can be resolved; values have no identity. Zero-size types never resolve:
// their instances may all share one address, so marker components are addressed by entity.
func (em *EntityManager) RefOf(instance any) (ComponentRef, bool) {
	if instance == nil {
		return ComponentRef{}, false
	}
	it := reflect.TypeOf(instance)
	if it.Kind() != reflect.Pointer || reflect.ValueOf(instance).IsNil() {
		return ComponentRef{}, false
	}
	if it.Elem().Size() == 0 {
		return ComponentRef{}, false
	}
	id, ok := em.registry.Lookup(it.Elem())
	if !ok {
		return ComponentRef{}, false
	}
	table := em.table(id)
	if table == nil {
		return ComponentRef{}, false
	}
	e, ok := table.ownerOf(instance)
	if !ok {
		return ComponentRef{}, false
	}
	return ComponentRef{Entity: e, Type: id}, true
}

// RemoveRef deletes the record behind ref; missing records are ignored
func (em *EntityManager) RemoveRef(ref ComponentRef) {
	table := em.table(ref.Type)
	if table == nil {
		return
	}
	if table.remove(ref.Entity) {
		delete(em.disabledComponents, ref)
	}
}

// RemoveComponent deletes e's component of type t if present
func (em *EntityManager) RemoveComponent(e core.Entity, t reflect.Type) {
	if ref, ok := em.Ref(e, t); ok {
		em.RemoveRef(ref)
	}
}

// RemoveComponentInstance deletes the record holding instance if present
func (em *EntityManager) RemoveComponentInstance(instance any) {
	if ref, ok := em.RefOf(instance); ok {
		em.RemoveRef(ref)
	}
}

// === Component enable overlay ===

// IsRefEnabled reports whether the record behind ref exists and is enabled
func (em *EntityManager) IsRefEnabled(ref ComponentRef) bool {
	table := em.table(ref.Type)
	if table == nil || !table.has(ref.Entity) {
		return false
	}
	_, disabled := em.disabledComponents[ref]
	return !disabled
}

// SetRefEnabled toggles the record behind ref; missing records are ignored
func (em *EntityManager) SetRefEnabled(ref ComponentRef, enabled bool) {
	table := em.table(ref.Type)
	if table == nil || !table.has(ref.Entity) {
		return
	}
	if enabled {
		delete(em.disabledComponents, ref)
	} else {
		em.disabledComponents[ref] = struct{}{}
	}
}

// IsComponentEnabled reports whether e's component of type t exists and is enabled.
// The owning entity's state is not considered.
func (em *EntityManager) IsComponentEnabled(e core.Entity, t reflect.Type) bool {
	ref, ok := em.Ref(e, t)
	return ok && em.IsRefEnabled(ref)
}

// DisableComponent hides e's component of type t from default searches
func (em *EntityManager) DisableComponent(e core.Entity, t reflect.Type) {
	if ref, ok := em.Ref(e, t); ok {
		em.SetRefEnabled(ref, false)
	}
}

// EnableComponent restores e's component of type t to default searches
func (em *EntityManager) EnableComponent(e core.Entity, t reflect.Type) {
	if ref, ok := em.Ref(e, t); ok {
		em.SetRefEnabled(ref, true)
	}
}

// IsComponentInstanceEnabled is IsComponentEnabled addressed by instance
func (em *EntityManager) IsComponentInstanceEnabled(instance any) bool {
	ref, ok := em.RefOf(instance)
	return ok && em.IsRefEnabled(ref)
}

// DisableComponentInstance is DisableComponent addressed by instance
func (em *EntityManager) DisableComponentInstance(instance any) {
	if ref, ok := em.RefOf(instance); ok {
		em.SetRefEnabled(ref, false)
	}
}

// EnableComponentInstance is EnableComponent addressed by instance
func (em *EntityManager) EnableComponentInstance(instance any) {
	if ref, ok := em.RefOf(instance); ok {
		em.SetRefEnabled(ref, true)
	}
}

// === Queries ===

// Search returns every stored component of type t. Unless includeDisabled is set,
// only records whose entity and component are both enabled are returned.
// Result order is unspecified; do not retain results across ticks.
func (em *EntityManager) Search(t reflect.Type, includeDisabled bool) []SearchResult {
	t = componentType(t)
	if t == nil {
		return []SearchResult{}
	}
	id, ok := em.registry.Lookup(t)
	if !ok {
		return []SearchResult{}
	}
	table := em.table(id)
	if table == nil {
		return []SearchResult{}
	}

	result := make([]SearchResult, 0, table.count())
	for _, e := range table.entities {
		if !includeDisabled && !em.isActive(ComponentRef{Entity: e, Type: id}) {
			continue
		}
		result = append(result, SearchResult{Entity: e, Component: table.components[e]})
	}
	return result
}

// SearchEntitiesByComponents returns the entities owning a component of every listed type.
// Ownership is raw: enable overlays are ignored. Empty if no types are given or any type
// has no stored instances.
func (em *EntityManager) SearchEntitiesByComponents(types ...reflect.Type) []core.Entity {
	if len(types) == 0 {
		return []core.Entity{}
	}

	tables := make([]*componentTable, 0, len(types))
	for _, t := range types {
		table := em.lookupTable(t)
		if table == nil || table.count() == 0 {
			return []core.Entity{}
		}
		tables = append(tables, table)
	}

	// Smallest table first minimizes membership checks
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].count() < tables[j].count()
	})

	candidates := tables[0].all()
	for _, table := range tables[1:] {
		filtered := candidates[:0]
		for _, e := range candidates {
			if table.has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}
	return candidates
}

// Count returns the number of stored components of type t, enabled or not
func (em *EntityManager) Count(t reflect.Type) int {
	table := em.lookupTable(t)
	if table == nil {
		return 0
	}
	return table.count()
}

// EntityCount returns the number of distinct entities owning at least one component
func (em *EntityManager) EntityCount() int {
	seen := make(map[core.Entity]struct{})
	for _, table := range em.tables {
		if table == nil {
			continue
		}
		for _, e := range table.entities {
			seen[e] = struct{}{}
		}
	}
	return len(seen)
}

// === Internals ===

func (em *EntityManager) isActive(ref ComponentRef) bool {
	if _, disabled := em.disabledEntities[ref.Entity]; disabled {
		return false
	}
	_, disabled := em.disabledComponents[ref]
	return !disabled
}

func (em *EntityManager) owners(t reflect.Type) []core.Entity {
	table := em.lookupTable(t)
	if table == nil {
		return nil
	}
	return table.all()
}

// tableFor returns the table of t, assigning a type id and creating the table on first use
func (em *EntityManager) tableFor(t reflect.Type) *componentTable {
	id := em.registry.GetOrAssign(t)
	for int(id) >= len(em.tables) {
		em.tables = append(em.tables, nil)
	}
	if em.tables[id] == nil {
		em.tables[id] = newComponentTable(t)
	}
	return em.tables[id]
}

// lookupTable returns the table of t without assigning anything
func (em *EntityManager) lookupTable(t reflect.Type) *componentTable {
	t = componentType(t)
	if t == nil {
		return nil
	}
	id, ok := em.registry.Lookup(t)
	if !ok {
		return nil
	}
	return em.table(id)
}

func (em *EntityManager) table(id core.TypeID) *componentTable {
	if int(id) >= len(em.tables) {
		return nil
	}
	return em.tables[id]
}

// componentType normalizes a query type: pointer types address their element
func componentType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// resolveComponent turns a component argument into the pointer to store and its component type
func resolveComponent(arg any) (any, reflect.Type, error) {
	if arg == nil {
		return nil, nil, eris.Wrap(ErrInvalidComponent, "nil component")
	}

	if t, ok := arg.(reflect.Type); ok {
		t = componentType(t)
		if t == nil {
			return nil, nil, eris.Wrap(ErrInvalidComponent, "nil component type")
		}
		return reflect.New(t).Interface(), t, nil
	}

	v := reflect.ValueOf(arg)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, eris.Wrapf(ErrInvalidComponent, "nil %s", v.Type())
		}
		return arg, v.Type().Elem(), nil
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr.Interface(), v.Type(), nil
}
