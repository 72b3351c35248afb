package engine

import "github.com/rotisserie/eris"

var (
	// ErrDuplicateComponent is returned when an entity already stores a component of the added type
	ErrDuplicateComponent = eris.New("engine: duplicate component")
	// ErrInvalidComponent is returned for nil components or unsupported initial elements
	ErrInvalidComponent = eris.New("engine: invalid component")

	// ErrDuplicateSystem is returned when the same system instance is registered twice
	ErrDuplicateSystem = eris.New("engine: duplicate system")
	// ErrMissingSystem is returned when an operation names a system type that was never added
	ErrMissingSystem = eris.New("engine: missing system")
	// ErrInvalidSystem is returned for nil or non-comparable system values
	ErrInvalidSystem = eris.New("engine: invalid system")
	// ErrSystemNotEnabled is returned when repositioning a system that is not in its group's enabled list
	ErrSystemNotEnabled = eris.New("engine: system not enabled")
	// ErrInvalidPosition is returned when a reposition index falls outside the enabled list
	ErrInvalidPosition = eris.New("engine: invalid system position")
	// ErrGroupConflict is returned when a system type is bound to a second, different group
	ErrGroupConflict = eris.New("engine: system group already assigned")
	// ErrUnknownGroup is returned for a SystemGroup outside the fixed enumeration
	ErrUnknownGroup = eris.New("engine: unknown system group")
	// ErrReentrantUpdate is returned when Update is called from inside a running update
	ErrReentrantUpdate = eris.New("engine: reentrant update")
)
