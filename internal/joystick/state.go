package joystick

import "sync"

// Snapshot is the canonical state of the connected device at an instant.
// Axes are normalized to -1.0..1.0 with the deadzone snapped to exactly 0.
// Slice lengths match the device's reported axis/button counts and only
// change when a device is opened or removed.
type Snapshot struct {
	Connected bool      `json:"connected"`
	Name      string    `json:"name"`
	Axes      []float64 `json:"axes"`
	Buttons   []bool    `json:"buttons"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Axes != nil {
		out.Axes = make([]float64, len(s.Axes))
		copy(out.Axes, s.Axes)
	}
	if s.Buttons != nil {
		out.Buttons = make([]bool, len(s.Buttons))
		copy(out.Buttons, s.Buttons)
	}
	return out
}

// Store holds the latest snapshot. All access goes through a single mutex
// covering the whole struct, so a reader can never observe axes from one
// device generation and buttons from another.
type Store struct {
	mu    sync.Mutex
	state Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Read returns a deep copy of the current snapshot.
func (st *Store) Read() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}

// Write replaces the stored snapshot wholesale.
func (st *Store) Write(s Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = s.Clone()
}

// Resize reinitializes the snapshot for a freshly opened device: numAxes
// zeroed axes, numButtons released buttons. Called once per device open.
func (st *Store) Resize(name string, numAxes, numButtons int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = Snapshot{
		Connected: true,
		Name:      name,
		Axes:      make([]float64, numAxes),
		Buttons:   make([]bool, numButtons),
	}
}

// Clear resets the store to a disconnected, zero-length snapshot.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = Snapshot{}
}

// SetAxis updates a single axis. Indices beyond the current axis count are
// dropped; stale or malformed device reports must not grow the slices.
func (st *Store) SetAxis(index int, value float64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if index < 0 || index >= len(st.state.Axes) {
		return false
	}
	st.state.Axes[index] = value
	return true
}

// SetButton updates a single button, with the same bounds policy as SetAxis.
func (st *Store) SetButton(index int, pressed bool) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if index < 0 || index >= len(st.state.Buttons) {
		return false
	}
	st.state.Buttons[index] = pressed
	return true
}
