package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/JoystickCommander/internal/joystick"
)

type recordSink struct {
	sent []Command
}

func (s *recordSink) Send(cmd Command) error {
	s.sent = append(s.sent, cmd)
	return nil
}

func newTestConsumer(store *joystick.Store, run *joystick.RunState) (*Consumer, *recordSink, *bytes.Buffer) {
	sink := &recordSink{}
	out := &bytes.Buffer{}
	c := NewConsumer(store, run, NewMapping(DefaultBindings()), sink, out, time.Millisecond)
	return c, sink, out
}

// End-to-end over the store: open a 2-axis 4-button pad, move an axis,
// press button 1, and check exactly one command with id 1 comes out.
func TestConsumerScenario(t *testing.T) {
	store := joystick.NewStore()
	run := joystick.NewRunState()
	c, sink, out := newTestConsumer(store, run)

	store.Resize("pad", 2, 4)
	c.tick()
	require.Empty(t, sink.sent)
	assert.Contains(t, out.String(), "Axes: [ 0.00  0.00 ] Buttons: [0000]")

	store.SetAxis(0, joystick.NormalizeAxis(16000, joystick.DefaultDeadzone))
	store.SetButton(1, true)

	out.Reset()
	c.tick()
	require.Equal(t, []Command{{ID: 1, Label: "A"}}, sink.sent)
	assert.Contains(t, out.String(), "Axes: [ 0.49  0.00 ] Buttons: [0100]")
	assert.Contains(t, out.String(), "Sending command: 1 (button A)")

	// Button still held: no further emission.
	c.tick()
	require.Len(t, sink.sent, 1)

	// Release, then press again: a fresh edge.
	store.SetButton(1, false)
	c.tick()
	store.SetButton(1, true)
	c.tick()
	require.Len(t, sink.sent, 2)
}

func TestConsumerUnboundButton(t *testing.T) {
	store := joystick.NewStore()
	run := joystick.NewRunState()
	c, sink, _ := newTestConsumer(store, run)

	store.Resize("pad", 0, 8)
	c.tick()
	store.SetButton(7, true)
	c.tick()
	assert.Empty(t, sink.sent, "buttons beyond the mapping emit nothing")
}

func TestConsumerPausedIdles(t *testing.T) {
	store := joystick.NewStore()
	run := joystick.NewRunState()
	c, sink, out := newTestConsumer(store, run)

	store.Resize("pad", 0, 2)
	c.tick()

	require.True(t, run.Pause())

	// Button pressed while paused: the run loop would skip the tick
	// entirely, so nothing renders and no edge is recorded.
	store.SetButton(0, true)
	out.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	c.Run(ctx)

	assert.Empty(t, sink.sent)
	assert.Empty(t, out.String())
}

func TestConsumerRunStopsOnTerminate(t *testing.T) {
	store := joystick.NewStore()
	run := joystick.NewRunState()
	c, _, _ := newTestConsumer(store, run)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(context.Background())
	}()

	run.Terminate()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not observe termination")
	}
}

func TestConsumerPublishesChanges(t *testing.T) {
	store := joystick.NewStore()
	run := joystick.NewRunState()
	c, _, _ := newTestConsumer(store, run)

	changes := make(chan joystick.Snapshot, 8)
	c.PublishTo(changes)

	store.Resize("pad", 1, 1)
	c.tick()
	require.Len(t, changes, 1, "first snapshot is published")

	c.tick()
	require.Len(t, changes, 1, "unchanged snapshot is suppressed")

	store.SetAxis(0, 0.5)
	c.tick()
	require.Len(t, changes, 2)
}

func TestRenderStatus(t *testing.T) {
	snap := joystick.Snapshot{
		Axes:    []float64{-1, 0.49},
		Buttons: []bool{true, false, true},
	}
	got := renderStatus(snap)
	assert.Equal(t, "Axes: [-1.00  0.49 ] Buttons: [101]        \r", got)

	assert.Equal(t, "Axes: [] Buttons: []        \r", renderStatus(joystick.Snapshot{}))
}

func TestSnapshotsEqual(t *testing.T) {
	a := joystick.Snapshot{Connected: true, Name: "pad", Axes: []float64{0.5}, Buttons: []bool{true}}
	assert.True(t, snapshotsEqual(a, a.Clone()))

	b := a.Clone()
	b.Axes[0] = 0.6
	assert.False(t, snapshotsEqual(a, b))

	c := a.Clone()
	c.Buttons[0] = false
	assert.False(t, snapshotsEqual(a, c))

	d := a.Clone()
	d.Buttons = append(d.Buttons, false)
	assert.False(t, snapshotsEqual(a, d))
}
