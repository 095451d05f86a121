// Package input tracks which ship controls are currently held.
//
// Window backends report real key-down/key-up transitions through
// [Keys.Set]. Terminals only deliver presses (repeated while a key is held),
// so [Keys.Press] treats a key as held for a short window after each press.
package input

import (
	"strings"
	"time"
)

type Action int

const (
	TurnLeft Action = iota
	TurnRight
	Thrust
	Reverse
	actionCount
)

var actionNames = [actionCount]string{"turn_left", "turn_right", "thrust", "reverse"}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{TurnLeft, TurnRight, Thrust, Reverse}
}

// Snapshot is the held state of every action at one instant.
type Snapshot [actionCount]bool

func (s Snapshot) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s[a]
}

// Any reports whether some action is held.
func (s Snapshot) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

type Keys struct {
	hold      time.Duration
	down      [actionCount]bool
	lastPress [actionCount]time.Time
}

// NewKeys returns a tracker where a press keeps its action held for hold.
// A zero hold makes presses instantaneous; only Set then holds a key.
func NewKeys(hold time.Duration) *Keys {
	return &Keys{hold: hold}
}

func (k *Keys) Hold() time.Duration { return k.hold }

// Set records an explicit key-down or key-up.
func (k *Keys) Set(a Action, down bool) {
	if a < 0 || a >= actionCount {
		return
	}
	k.down[a] = down
	if !down {
		k.lastPress[a] = time.Time{}
	}
}

// Press records a key-press event at now.
func (k *Keys) Press(a Action, now time.Time) {
	if a < 0 || a >= actionCount {
		return
	}
	k.lastPress[a] = now
}

func (k *Keys) Release(a Action) { k.Set(a, false) }

func (k *Keys) ReleaseAll() {
	for _, a := range Actions() {
		k.Set(a, false)
	}
}

// Snapshot reports what is held at now.
func (k *Keys) Snapshot(now time.Time) Snapshot {
	var s Snapshot
	for i := range s {
		if k.down[i] {
			s[i] = true
			continue
		}
		last := k.lastPress[i]
		if !last.IsZero() && now.Sub(last) < k.hold && !now.Before(last) {
			s[i] = true
		}
	}
	return s
}

// Keymap binds key names to actions.
type Keymap map[string]Action

// DefaultKeymap covers the arrow keys and WASD.
func DefaultKeymap() Keymap {
	return Keymap{
		"left":  TurnLeft,
		"a":     TurnLeft,
		"right": TurnRight,
		"d":     TurnRight,
		"up":    Thrust,
		"w":     Thrust,
		"down":  Reverse,
		"s":     Reverse,
	}
}

// Lookup resolves a key name, case-insensitively.
func (m Keymap) Lookup(key string) (Action, bool) {
	a, ok := m[strings.ToLower(key)]
	return a, ok
}
