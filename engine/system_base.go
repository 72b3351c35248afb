package engine

// System is a stateful unit of per-tick behavior.
// Implementations hold references to the managers they query and must use pointer
// receivers so the SystemManager can track instances by identity.
type System interface {
	// OnCreate runs once per instance lifetime, on the first enable
	OnCreate()
	// OnEnabled runs on every transition into the enabled schedule
	OnEnabled()
	// OnDisabled runs when leaving the enabled schedule; state is retained
	OnDisabled()
	// OnDestroy runs on removal regardless of enabled state
	OnDestroy()
	// OnUpdate runs once per tick while enabled
	OnUpdate()
}

// Grouped is implemented by systems that declare their group up front
type Grouped interface {
	Group() SystemGroup
}

// SystemBase provides no-op lifecycle hooks and the entity manager reference.
// Embed in system struct to eliminate boilerplate.
type SystemBase struct {
	Entities *EntityManager
}

// NewSystemBase binds the base to an entity manager
// Call once in system constructor
func NewSystemBase(em *EntityManager) SystemBase {
	return SystemBase{Entities: em}
}

func (SystemBase) OnCreate()   {}
func (SystemBase) OnEnabled()  {}
func (SystemBase) OnDisabled() {}
func (SystemBase) OnDestroy()  {}
