package engine

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
)

// recorder collects hook calls across systems in invocation order
type recorder struct {
	calls []string
}

func (r *recorder) add(name, hook string) {
	r.calls = append(r.calls, name+"."+hook)
}

func (r *recorder) reset() {
	r.calls = nil
}

type hookSystem struct {
	name string
	rec  *recorder
}

func (s *hookSystem) OnCreate()   { s.rec.add(s.name, "create") }
func (s *hookSystem) OnEnabled()  { s.rec.add(s.name, "enabled") }
func (s *hookSystem) OnDisabled() { s.rec.add(s.name, "disabled") }
func (s *hookSystem) OnDestroy()  { s.rec.add(s.name, "destroy") }
func (s *hookSystem) OnUpdate()   { s.rec.add(s.name, "update") }

type SystemX struct{ hookSystem }
type SystemY struct{ hookSystem }
type SystemZ struct{ hookSystem }

type renderSystem struct{ hookSystem }

func (*renderSystem) Group() SystemGroup { return GroupRender }

type badGroupSystem struct{ hookSystem }

func (*badGroupSystem) Group() SystemGroup { return SystemGroup(99) }

type valueSystem struct{}

func (valueSystem) OnCreate()   {}
func (valueSystem) OnEnabled()  {}
func (valueSystem) OnDisabled() {}
func (valueSystem) OnDestroy()  {}
func (valueSystem) OnUpdate()   {}

// Updater is satisfied by every hookSystem-based type
type Updater interface{ OnUpdate() }

func newXYZ(rec *recorder) (*SystemX, *SystemY, *SystemZ) {
	return &SystemX{hookSystem{"X", rec}}, &SystemY{hookSystem{"Y", rec}}, &SystemZ{hookSystem{"Z", rec}}
}

var (
	typeX = SystemType[*SystemX]()
	typeY = SystemType[*SystemY]()
	typeZ = SystemType[*SystemZ]()
)

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestAddSystem_DuplicateInstance(t *testing.T) {
	sm := NewSystemManager()
	x, _, _ := newXYZ(&recorder{})

	mustNoErr(t, sm.AddSystem(x))
	if err := sm.AddSystem(x); !errors.Is(err, ErrDuplicateSystem) {
		t.Errorf("Expected ErrDuplicateSystem, got %v", err)
	}
	if len(sm.Systems()) != 1 {
		t.Errorf("Expected 1 registered system, got %d", len(sm.Systems()))
	}
}

func TestAddSystem_Invalid(t *testing.T) {
	sm := NewSystemManager()
	var nilX *SystemX

	if err := sm.AddSystem(nil); !errors.Is(err, ErrInvalidSystem) {
		t.Errorf("Expected ErrInvalidSystem for nil, got %v", err)
	}
	if err := sm.AddSystem(nilX); !errors.Is(err, ErrInvalidSystem) {
		t.Errorf("Expected ErrInvalidSystem for nil pointer, got %v", err)
	}
	if err := sm.AddSystem(valueSystem{}); !errors.Is(err, ErrInvalidSystem) {
		t.Errorf("Expected ErrInvalidSystem for value system, got %v", err)
	}
}

func TestGetSystem_Matching(t *testing.T) {
	sm := NewSystemManager()
	x, y, _ := newXYZ(&recorder{})
	mustNoErr(t, sm.AddSystem(x))
	mustNoErr(t, sm.AddSystem(y))

	if got, ok := sm.GetSystem(typeY); !ok || got != y {
		t.Error("Expected exact pointer type match")
	}
	if got, ok := sm.GetSystem(reflect.TypeOf(SystemY{})); !ok || got != y {
		t.Error("Expected struct type to resolve to the pointer registration")
	}
	if got, ok := sm.GetSystem(reflect.TypeFor[Updater]()); !ok || got != x {
		t.Error("Expected interface type to resolve to the first implementer")
	}
	if sm.HasSystem(typeZ) {
		t.Error("Expected unregistered type to be absent")
	}

	typed, ok := SystemOf[*SystemX](sm)
	if !ok || typed != x {
		t.Error("Expected SystemOf to return the typed instance")
	}
}

func TestEnableSystem_LifecycleHooks(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, _, _ := newXYZ(rec)
	mustNoErr(t, sm.AddSystem(x))

	if len(rec.calls) != 0 {
		t.Fatalf("Expected Added state to be inert, got %v", rec.calls)
	}

	mustNoErr(t, sm.EnableSystem(typeX))
	if want := []string{"X.create", "X.enabled"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v on first enable, got %v", want, rec.calls)
	}

	rec.reset()
	mustNoErr(t, sm.EnableSystem(typeX))
	if len(rec.calls) != 0 {
		t.Errorf("Expected enabling an enabled system to be a no-op, got %v", rec.calls)
	}

	mustNoErr(t, sm.DisableSystem(typeX))
	mustNoErr(t, sm.DisableSystem(typeX))
	mustNoErr(t, sm.EnableSystem(typeX))
	if want := []string{"X.disabled", "X.enabled"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v on disable/enable cycle, got %v", want, rec.calls)
	}
}

func TestDisableSystem_NeverEnabled(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, _, _ := newXYZ(rec)
	mustNoErr(t, sm.AddSystem(x))

	mustNoErr(t, sm.DisableSystem(typeX))
	if len(rec.calls) != 0 {
		t.Errorf("Expected no hooks when disabling a never-enabled system, got %v", rec.calls)
	}
}

func TestMissingSystemErrors(t *testing.T) {
	sm := NewSystemManager()

	ops := map[string]error{
		"enable":     sm.EnableSystem(typeX),
		"disable":    sm.DisableSystem(typeX),
		"reposition": sm.UpdatePosition(typeX, 0),
		"remove":     sm.RemoveSystem(typeX),
	}
	for name, err := range ops {
		if !errors.Is(err, ErrMissingSystem) {
			t.Errorf("%s: expected ErrMissingSystem, got %v", name, err)
		}
	}
}

func TestRemoveSystem(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, y, _ := newXYZ(rec)
	mustNoErr(t, sm.AddSystem(x))
	mustNoErr(t, sm.AddSystem(y))
	mustNoErr(t, sm.EnableSystem(typeX))
	rec.reset()

	// Enabled system: dropped from its list, destroyed
	mustNoErr(t, sm.RemoveSystem(typeX))
	if want := []string{"X.destroy"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
	if sm.HasSystem(typeX) {
		t.Error("Expected removed system to be unregistered")
	}
	if len(sm.Enabled(GroupLogic)) != 0 {
		t.Error("Expected removed system gone from the enabled list")
	}

	// Never-enabled system: destroyed unconditionally
	rec.reset()
	mustNoErr(t, sm.RemoveSystem(typeY))
	if want := []string{"Y.destroy"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}

	if err := sm.RemoveSystem(typeX); !errors.Is(err, ErrMissingSystem) {
		t.Errorf("Expected ErrMissingSystem on second remove, got %v", err)
	}
}

func TestRemoveSystem_FreshInstanceCreatesAgain(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, _, _ := newXYZ(rec)
	mustNoErr(t, sm.AddSystem(x))
	mustNoErr(t, sm.EnableSystem(typeX))
	mustNoErr(t, sm.RemoveSystem(typeX))
	rec.reset()

	x2 := &SystemX{hookSystem{"X2", rec}}
	mustNoErr(t, sm.AddSystem(x2))
	mustNoErr(t, sm.EnableSystem(typeX))
	if want := []string{"X2.create", "X2.enabled"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}

func TestUpdate_OnlyTargetGroup(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, y, z := newXYZ(rec)
	r := &renderSystem{hookSystem{"R", rec}}

	mustNoErr(t, sm.SetGroup(typeY, GroupPhysics))
	for _, s := range []System{x, y, z, r} {
		mustNoErr(t, sm.AddSystem(s))
	}
	mustNoErr(t, sm.EnableSystem(typeX))
	mustNoErr(t, sm.EnableSystem(typeY))
	mustNoErr(t, sm.EnableSystem(SystemType[*renderSystem]()))
	// Z stays Added only
	rec.reset()

	mustNoErr(t, sm.Update(GroupLogic))
	if want := []string{"X.update"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}

	rec.reset()
	mustNoErr(t, sm.Update(GroupPhysics))
	if want := []string{"Y.update"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}

	rec.reset()
	mustNoErr(t, sm.Update(GroupPreLogic))
	if len(rec.calls) != 0 {
		t.Errorf("Expected empty group to run nothing, got %v", rec.calls)
	}

	rec.reset()
	mustNoErr(t, sm.UpdateAll())
	if want := []string{"X.update", "Y.update", "R.update"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected groups in fixed order %v, got %v", want, rec.calls)
	}

	rec.reset()
	mustNoErr(t, sm.DisableSystem(typeX))
	rec.reset()
	mustNoErr(t, sm.Update(GroupLogic))
	if len(rec.calls) != 0 {
		t.Errorf("Expected disabled system skipped, got %v", rec.calls)
	}
}

// Scenario: X then Y in one group, reorder X to index 1
func TestScenario_UpdatePositionReorders(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	x, y, _ := newXYZ(rec)
	mustNoErr(t, sm.AddSystem(x))
	mustNoErr(t, sm.AddSystem(y))
	mustNoErr(t, sm.EnableSystem(typeX))
	mustNoErr(t, sm.EnableSystem(typeY))
	rec.reset()

	mustNoErr(t, sm.Update(GroupLogic))
	if want := []string{"X.update", "Y.update"}; !slices.Equal(rec.calls, want) {
		t.Fatalf("Expected %v, got %v", want, rec.calls)
	}

	mustNoErr(t, sm.UpdatePosition(typeX, 1))
	rec.reset()
	mustNoErr(t, sm.Update(GroupLogic))
	if want := []string{"Y.update", "X.update"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v after reposition, got %v", want, rec.calls)
	}
}

func TestUpdatePosition_Errors(t *testing.T) {
	sm := NewSystemManager()
	x, y, z := newXYZ(&recorder{})
	for _, s := range []System{x, y, z} {
		mustNoErr(t, sm.AddSystem(s))
	}
	mustNoErr(t, sm.EnableSystem(typeX))
	mustNoErr(t, sm.EnableSystem(typeY))

	if err := sm.UpdatePosition(typeZ, 0); !errors.Is(err, ErrSystemNotEnabled) {
		t.Errorf("Expected ErrSystemNotEnabled, got %v", err)
	}
	for _, idx := range []int{-1, 2} {
		if err := sm.UpdatePosition(typeX, idx); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("index %d: expected ErrInvalidPosition, got %v", idx, err)
		}
	}

	mustNoErr(t, sm.EnableSystem(typeZ))
	mustNoErr(t, sm.UpdatePosition(typeZ, 0))
	want := []reflect.Type{typeZ, typeX, typeY}
	if got := sm.Enabled(GroupLogic); !slices.Equal(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}

func TestGroupAssignment(t *testing.T) {
	sm := NewSystemManager()
	rec := &recorder{}
	x, y, _ := newXYZ(rec)

	// Default
	mustNoErr(t, sm.AddSystem(x))
	if g, ok := sm.Group(typeX); !ok || g != DefaultGroup {
		t.Errorf("Expected default group %s, got %s (ok=%v)", DefaultGroup, g, ok)
	}

	// Explicit binding before registration, accepted for struct type too
	mustNoErr(t, sm.SetGroup(reflect.TypeOf(SystemY{}), GroupPreRender))
	mustNoErr(t, sm.AddSystem(y))
	if g, _ := sm.Group(typeY); g != GroupPreRender {
		t.Errorf("Expected pre-render, got %s", g)
	}

	// Immutable
	if err := sm.SetGroup(typeX, GroupRender); !errors.Is(err, ErrGroupConflict) {
		t.Errorf("Expected ErrGroupConflict, got %v", err)
	}
	mustNoErr(t, sm.SetGroup(typeX, DefaultGroup))

	// Declared
	r := &renderSystem{hookSystem{"R", rec}}
	mustNoErr(t, sm.AddSystem(r))
	if g, _ := sm.Group(SystemType[*renderSystem]()); g != GroupRender {
		t.Errorf("Expected declared render group, got %s", g)
	}

	// Declared group conflicting with an explicit binding
	sm2 := NewSystemManager()
	mustNoErr(t, sm2.SetGroup(SystemType[*renderSystem](), GroupLogic))
	if err := sm2.AddSystem(&renderSystem{hookSystem{"R2", rec}}); !errors.Is(err, ErrGroupConflict) {
		t.Errorf("Expected ErrGroupConflict for declared mismatch, got %v", err)
	}

	if err := sm.AddSystem(&badGroupSystem{hookSystem{"B", rec}}); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup for invalid declared group, got %v", err)
	}
	if err := sm.SetGroup(typeZ, SystemGroup(-1)); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup, got %v", err)
	}
}

func TestUpdate_UnknownGroup(t *testing.T) {
	sm := NewSystemManager()
	if err := sm.Update(SystemGroup(42)); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup, got %v", err)
	}
}

// mutatingSystem changes the schedule from inside its update hook
type mutatingSystem struct {
	hookSystem
	sm     *SystemManager
	action func(*SystemManager) error
	err    error
}

func (s *mutatingSystem) OnUpdate() {
	s.hookSystem.OnUpdate()
	if s.action != nil {
		s.err = s.action(s.sm)
	}
}

func TestUpdate_MutationsFromHooks(t *testing.T) {
	rec := &recorder{}
	sm := NewSystemManager()
	m := &mutatingSystem{hookSystem: hookSystem{"M", rec}, sm: sm}
	x, y, _ := newXYZ(rec)
	for _, s := range []System{m, x, y} {
		mustNoErr(t, sm.AddSystem(s))
	}
	mustNoErr(t, sm.EnableSystem(SystemType[*mutatingSystem]()))
	mustNoErr(t, sm.EnableSystem(typeX))

	// Disabling a not-yet-reached system skips it; enabling a new one defers it
	m.action = func(sm *SystemManager) error {
		if err := sm.DisableSystem(typeX); err != nil {
			return err
		}
		return sm.EnableSystem(typeY)
	}
	rec.reset()
	mustNoErr(t, sm.Update(GroupLogic))
	mustNoErr(t, m.err)
	want := []string{"M.update", "X.disabled", "Y.create", "Y.enabled"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}

	m.action = nil
	rec.reset()
	mustNoErr(t, sm.Update(GroupLogic))
	if want := []string{"M.update", "Y.update"}; !slices.Equal(rec.calls, want) {
		t.Errorf("Expected %v on next update, got %v", want, rec.calls)
	}
}

func TestUpdate_RejectsReentrantCall(t *testing.T) {
	sm := NewSystemManager()
	m := &mutatingSystem{hookSystem: hookSystem{"M", &recorder{}}, sm: sm}
	m.action = func(sm *SystemManager) error { return sm.Update(GroupRender) }
	mustNoErr(t, sm.AddSystem(m))
	mustNoErr(t, sm.EnableSystem(SystemType[*mutatingSystem]()))

	mustNoErr(t, sm.Update(GroupLogic))
	if !errors.Is(m.err, ErrReentrantUpdate) {
		t.Errorf("Expected ErrReentrantUpdate, got %v", m.err)
	}

	// Guard released after the outer call
	m.action = nil
	mustNoErr(t, sm.Update(GroupLogic))
}

func TestGroupOrderAndNames(t *testing.T) {
	want := []string{"pre-logic", "logic", "post-logic", "game-physics", "physics", "pre-render", "render"}
	for i, g := range Groups {
		if int(g) != i {
			t.Errorf("Expected group %d at position %d", g, i)
		}
		if g.String() != want[i] {
			t.Errorf("Expected name %q, got %q", want[i], g.String())
		}
	}
	if SystemGroup(-1).Valid() || SystemGroup(len(Groups)).Valid() {
		t.Error("Expected out-of-range groups to be invalid")
	}
	if got := fmt.Sprint(SystemGroup(9)); got != "unknown" {
		t.Errorf("Expected unknown, got %s", got)
	}
}
