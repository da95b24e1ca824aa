package input

import (
	"sort"

	"github.com/milk9111/pixee/assert"
)

// DefaultJustWindow is how long, in seconds, a transition is reported as
// having just happened when nobody consumes it. It outlives one tick at
// 20fps and up without spanning several visible frames.
const DefaultJustWindow = 0.05

// Record is the tracked state of one input identifier.
type Record struct {
	Down         bool
	JustPressed  bool
	JustReleased bool
	// Age is the number of seconds since the last down/up transition.
	Age float64
}

// State maps key names and mouse tokens to their records. A record exists
// only while its identifier is down or transitioned within the just window.
type State struct {
	records map[string]*Record
	window  float64
	decays  uint64
}

func NewState(window float64) *State {
	if window <= 0 {
		window = DefaultJustWindow
	}
	return &State{
		records: make(map[string]*Record),
		window:  window,
	}
}

// JustWindow returns the expiry window in seconds.
func (s *State) JustWindow() float64 {
	if s == nil {
		return 0
	}
	return s.window
}

// OnRawTransition applies one physical down/up edge. Callers must filter
// key repeat; a repeated down edge re-arms JustPressed and resets Age.
func (s *State) OnRawTransition(id string, down bool) {
	if s == nil {
		return
	}

	rec, ok := s.records[id]
	if !ok {
		// A release with no matching press is dropped.
		if !down {
			return
		}
		s.records[id] = &Record{Down: true, JustPressed: true}
		return
	}

	rec.Down = down
	rec.Age = 0
	if down {
		rec.JustPressed = true
	} else {
		rec.JustReleased = true
	}
}

// IsDown reports whether id is held.
func (s *State) IsDown(id string) bool {
	if s == nil {
		return false
	}
	rec, ok := s.records[id]
	return ok && rec.Down
}

// ConsumeJustPressed reports a press edge once; later calls return false
// until the next press.
func (s *State) ConsumeJustPressed(id string) bool {
	if s == nil {
		return false
	}
	rec, ok := s.records[id]
	if !ok || !rec.JustPressed {
		return false
	}
	rec.JustPressed = false
	return true
}

// ConsumeJustReleased reports a release edge once and forgets id. If id was
// pressed again before the release was consumed, the record stays so the
// held state is not lost.
func (s *State) ConsumeJustReleased(id string) bool {
	if s == nil {
		return false
	}
	rec, ok := s.records[id]
	if !ok || !rec.JustReleased {
		return false
	}
	if rec.Down {
		rec.JustReleased = false
		return true
	}
	delete(s.records, id)
	return true
}

// Decay ages every record by dt seconds, expires stale press edges and drops
// released records once the window has passed. Call it once per tick, after
// the tick's edges have been applied.
func (s *State) Decay(dt float64) {
	if s == nil {
		return
	}
	assert.That(dt >= 0, "input: negative delta time %v", dt)
	if dt < 0 {
		dt = 0
	}
	s.decays++

	for id, rec := range s.records {
		rec.Age += dt
		if rec.Age < s.window {
			continue
		}
		if !rec.Down {
			delete(s.records, id)
			continue
		}
		// A release followed by a quick re-press leaves JustReleased set on a
		// held record; it ages out with the press.
		rec.JustPressed = false
		rec.JustReleased = false
	}
}

// Reset forgets every record. Used when releases may have been lost, for
// example while the window was unfocused.
func (s *State) Reset() {
	if s == nil {
		return
	}
	clear(s.records)
}

// Len returns the number of tracked identifiers.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Lookup returns a copy of the record for id.
func (s *State) Lookup(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Held returns the sorted identifiers that are currently down.
func (s *State) Held() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.records))
	for id, rec := range s.records {
		if rec.Down {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Decays returns how many times Decay has run.
func (s *State) Decays() uint64 {
	if s == nil {
		return 0
	}
	return s.decays
}
