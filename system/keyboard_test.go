package system

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestKeyFromTCell(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyRune, 'a', KeyLeft},
		{tcell.KeyRune, 'D', KeyRight},
		{tcell.KeyRune, 'w', KeyUp},
		{tcell.KeyRune, 's', KeyDown},
		{tcell.KeyLeft, 0, KeyLeft},
		{tcell.KeyRight, 0, KeyRight},
		{tcell.KeyUp, 0, KeyUp},
		{tcell.KeyDown, 0, KeyDown},
		{tcell.KeyRune, 'q', KeyQuit},
		{tcell.KeyEscape, 0, KeyQuit},
		{tcell.KeyCtrlC, 0, KeyQuit},
		{tcell.KeyRune, 'p', KeyPause},
		{tcell.KeyRune, 'r', KeyReset},
		{tcell.KeyRune, 'm', KeyMute},
		{tcell.KeyRune, 'x', KeyNone},
		{tcell.KeyTab, 0, KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromTCell(tt.key, tt.r); got != tt.want {
			t.Errorf("KeyFromTCell(%v, %q): expected %d, got %d", tt.key, tt.r, tt.want, got)
		}
	}
}

func TestKeyboard_HoldWindow(t *testing.T) {
	kb := NewKeyboard(150 * time.Millisecond)
	t0 := time.Unix(100, 0)

	if kb.Held(KeyLeft, t0) {
		t.Error("Expected no key held initially")
	}

	kb.Press(KeyLeft, t0)
	if !kb.Held(KeyLeft, t0.Add(100*time.Millisecond)) {
		t.Error("Expected key held inside the window")
	}
	if kb.Held(KeyLeft, t0.Add(150*time.Millisecond)) {
		t.Error("Expected key released at the end of the window")
	}

	// Key repeat extends the hold
	kb.Press(KeyLeft, t0.Add(140*time.Millisecond))
	if !kb.Held(KeyLeft, t0.Add(250*time.Millisecond)) {
		t.Error("Expected repeat press to extend the hold")
	}
}

func TestKeyboard_OppositeCancels(t *testing.T) {
	kb := NewKeyboard(time.Second)
	t0 := time.Unix(100, 0)

	kb.Press(KeyLeft, t0)
	kb.Press(KeyUp, t0)
	kb.Press(KeyRight, t0.Add(10*time.Millisecond))

	now := t0.Add(20 * time.Millisecond)
	if kb.Held(KeyLeft, now) {
		t.Error("Expected right press to cancel left")
	}
	if !kb.Held(KeyRight, now) || !kb.Held(KeyUp, now) {
		t.Error("Expected right and up held")
	}
}

func TestKeyboard_QuitAndPause(t *testing.T) {
	kb := NewKeyboard(time.Second)
	t0 := time.Unix(100, 0)

	kb.Press(KeyPause, t0)
	kb.Press(KeyPause, t0)
	kb.Press(KeyPause, t0)
	if n := kb.TakePauseToggles(); n != 3 {
		t.Errorf("Expected 3 toggles, got %d", n)
	}
	if n := kb.TakePauseToggles(); n != 0 {
		t.Errorf("Expected toggles reset, got %d", n)
	}

	kb.Press(KeyReset, t0)
	if n := kb.TakeResets(); n != 1 {
		t.Errorf("Expected 1 reset, got %d", n)
	}

	if kb.QuitRequested() {
		t.Error("Expected no quit yet")
	}
	kb.Press(KeyQuit, t0)
	if !kb.QuitRequested() {
		t.Error("Expected quit requested")
	}

	// KeyNone is ignored
	kb.Press(KeyNone, t0)
	if kb.Held(KeyNone, t0) {
		t.Error("Expected KeyNone never held")
	}
}

func TestKeyboard_IgnoresNonKeyEvents(t *testing.T) {
	kb := NewKeyboard(time.Second)
	if kb.HandleEvent(tcell.NewEventResize(80, 24), time.Now()) {
		t.Error("Expected resize event ignored")
	}
}
