package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/soar/JoystickCommander/internal/joystick"
)

// DefaultRenderInterval is the consumer cadence. Deliberately much tighter
// than the poller's so the status line tracks the store in near real time
// without coupling to the poller's timing.
const DefaultRenderInterval = 10 * time.Millisecond

// Consumer reads snapshots from the store on its own cadence, renders a
// status line in place, and emits one command per button press edge.
type Consumer struct {
	store    *joystick.Store
	run      *joystick.RunState
	mapping  Mapping
	sink     Sink
	out      io.Writer
	interval time.Duration

	detector *Detector

	// changes receives a copy of the snapshot whenever it differs from the
	// previously published one. Nil when no observer is attached.
	changes chan<- joystick.Snapshot
	last    joystick.Snapshot
	primed  bool
}

func NewConsumer(store *joystick.Store, run *joystick.RunState, mapping Mapping, sink Sink, out io.Writer, interval time.Duration) *Consumer {
	if interval <= 0 {
		interval = DefaultRenderInterval
	}
	return &Consumer{
		store:    store,
		run:      run,
		mapping:  mapping,
		sink:     sink,
		out:      out,
		interval: interval,
		detector: NewDetector(),
	}
}

// PublishTo attaches a channel that receives snapshot changes. Must be
// called before Run.
func (c *Consumer) PublishTo(ch chan<- joystick.Snapshot) {
	c.changes = ch
}

// Run ticks until the run state reaches Terminating or the context is done.
// While paused the consumer renders nothing, emits nothing, and leaves the
// detector's previous state frozen; since capture cannot resume without a
// restart, frozen edge history can never replay as phantom presses.
func (c *Consumer) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		switch c.run.State() {
		case joystick.Terminating:
			return
		case joystick.Running:
			c.tick()
		default:
			// Paused: idle.
		}
	}
}

func (c *Consumer) tick() {
	snap := c.store.Read()

	fmt.Fprint(c.out, renderStatus(snap))

	for _, idx := range c.detector.Presses(snap.Buttons) {
		cmd, ok := c.mapping.Lookup(idx)
		if !ok {
			continue
		}
		if err := c.sink.Send(cmd); err != nil {
			fmt.Fprintf(c.out, "\nCommand send failed: %v\n", err)
		}
	}

	c.publish(snap)
}

func (c *Consumer) publish(snap joystick.Snapshot) {
	if c.changes == nil {
		return
	}
	if c.primed && snapshotsEqual(c.last, snap) {
		return
	}
	c.last = snap
	c.primed = true

	select {
	case c.changes <- snap:
	default:
		// Observer is behind; it will pick up a later snapshot.
	}
}

// renderStatus formats the full snapshot as a single in-place status line:
// axes as fixed-width decimals, buttons as a 0/1 bitstring, trailing blanks
// to overpaint leftovers from a longer previous line, and a carriage return
// instead of a newline.
func renderStatus(snap joystick.Snapshot) string {
	var b strings.Builder
	b.WriteString("Axes: [")
	for _, axis := range snap.Axes {
		fmt.Fprintf(&b, "%5.2f ", axis)
	}
	b.WriteString("] Buttons: [")
	for _, pressed := range snap.Buttons {
		if pressed {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString("]        \r")
	return b.String()
}

func snapshotsEqual(a, b joystick.Snapshot) bool {
	if a.Connected != b.Connected || a.Name != b.Name ||
		len(a.Axes) != len(b.Axes) || len(a.Buttons) != len(b.Buttons) {
		return false
	}
	for i := range a.Axes {
		if a.Axes[i] != b.Axes[i] {
			return false
		}
	}
	for i := range a.Buttons {
		if a.Buttons[i] != b.Buttons[i] {
			return false
		}
	}
	return true
}
