package system

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Key is a game action bound to one or more terminal keys
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyQuit
	KeyPause
	KeyReset
	KeyMute
)

// opposite maps each movement key to the key it cancels
var opposite = map[Key]Key{
	KeyLeft:  KeyRight,
	KeyRight: KeyLeft,
	KeyUp:    KeyDown,
	KeyDown:  KeyUp,
}

// KeyFromTCell maps a terminal key to its game action
func KeyFromTCell(k tcell.Key, r rune) Key {
	switch k {
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return KeyLeft
		case 'd', 'D':
			return KeyRight
		case 'w', 'W':
			return KeyUp
		case 's', 'S':
			return KeyDown
		case 'q', 'Q':
			return KeyQuit
		case 'p', 'P':
			return KeyPause
		case 'r', 'R':
			return KeyReset
		case 'm', 'M':
			return KeyMute
		}
	}
	return KeyNone
}

// Keyboard turns the terminal's press-only key stream into held-key state.
// A movement key counts as held for the hold window after its last press; key repeat
// from the terminal keeps it held. Written by the input goroutine, read by InputSystem.
type Keyboard struct {
	mu           sync.Mutex
	hold         time.Duration
	pressed      map[Key]time.Time
	quit         bool
	pauseToggles int
	muteToggles  int
	resets       int
}

// NewKeyboard creates a keyboard with the given hold window
func NewKeyboard(hold time.Duration) *Keyboard {
	return &Keyboard{
		hold:    hold,
		pressed: make(map[Key]time.Time),
	}
}

// Press records a key press at the given time
func (k *Keyboard) Press(key Key, at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch key {
	case KeyNone:
	case KeyQuit:
		k.quit = true
	case KeyPause:
		k.pauseToggles++
	case KeyReset:
		k.resets++
	case KeyMute:
		k.muteToggles++
	default:
		k.pressed[key] = at
		// Latest direction wins on an axis
		delete(k.pressed, opposite[key])
	}
}

// HandleEvent feeds a terminal event, reporting whether it mapped to a game key
func (k *Keyboard) HandleEvent(ev tcell.Event, at time.Time) bool {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	key := KeyFromTCell(keyEv.Key(), keyEv.Rune())
	if key == KeyNone {
		return false
	}
	k.Press(key, at)
	return true
}

// Held reports whether key was pressed within the hold window before now
func (k *Keyboard) Held(key Key, now time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	at, ok := k.pressed[key]
	if !ok {
		return false
	}
	return now.Sub(at) < k.hold
}

// QuitRequested reports whether a quit key was pressed
func (k *Keyboard) QuitRequested() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// TakePauseToggles returns and resets the number of pause presses since the last call
func (k *Keyboard) TakePauseToggles() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := k.pauseToggles
	k.pauseToggles = 0
	return n
}

// TakeMuteToggles returns and resets the number of mute presses since the last call
func (k *Keyboard) TakeMuteToggles() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := k.muteToggles
	k.muteToggles = 0
	return n
}

// TakeResets returns and resets the number of reset presses since the last call
func (k *Keyboard) TakeResets() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := k.resets
	k.resets = 0
	return n
}
