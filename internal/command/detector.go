package command

// Detector finds rising edges in successive button snapshots. It owns the
// previous state; nothing else reads or writes it.
type Detector struct {
	prev []bool
}

func NewDetector() *Detector {
	return &Detector{}
}

// Presses returns the indices that transitioned from released to pressed
// since the last call, then records the given state as the new previous
// state. Held buttons and releases yield nothing.
//
// The previous state may be shorter or longer than the current one after a
// device reconnect with different button counts: indices missing from the
// previous state count as released, indices missing from the current state
// are forgotten.
func (d *Detector) Presses(buttons []bool) []int {
	var edges []int
	for i, pressed := range buttons {
		if pressed && (i >= len(d.prev) || !d.prev[i]) {
			edges = append(edges, i)
		}
	}

	if cap(d.prev) < len(buttons) {
		d.prev = make([]bool, len(buttons))
	}
	d.prev = d.prev[:len(buttons)]
	copy(d.prev, buttons)

	return edges
}

// Reset forgets the previous state. The next snapshot's pressed buttons all
// register as edges.
func (d *Detector) Reset() {
	d.prev = d.prev[:0]
}
