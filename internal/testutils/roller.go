package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller replays a fixed sequence of die faces. It satisfies the
// rpg-toolkit dice.Roller interface and fails once the script runs out, so a
// test notices any unexpected extra draw.
type ScriptedRoller struct {
	mu    sync.Mutex
	faces []int
	calls []int
}

// NewScriptedRoller returns a roller that yields faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Roll returns the next scripted face, ignoring size
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.faces) == 0 {
		return 0, fmt.Errorf("scripted roller exhausted (roll of d%d)", size)
	}
	face := r.faces[0]
	r.faces = r.faces[1:]
	r.calls = append(r.calls, size)
	return face, nil
}

// RollN returns count scripted faces
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		face, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, face)
	}
	return out, nil
}

// Calls returns the die sizes requested so far
func (r *ScriptedRoller) Calls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls...)
}

// Remaining returns how many faces are left
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.faces)
}
