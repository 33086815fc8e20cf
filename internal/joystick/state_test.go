package joystick

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreResize(t *testing.T) {
	st := NewStore()
	st.Resize("pad", 2, 4)

	snap := st.Read()
	require.True(t, snap.Connected)
	require.Equal(t, "pad", snap.Name)
	require.Len(t, snap.Axes, 2)
	require.Len(t, snap.Buttons, 4)
	for _, v := range snap.Axes {
		assert.Zero(t, v)
	}
	for _, pressed := range snap.Buttons {
		assert.False(t, pressed)
	}
}

func TestStoreReadIsDeepCopy(t *testing.T) {
	st := NewStore()
	st.Resize("pad", 1, 1)

	snap := st.Read()
	snap.Axes[0] = 0.7
	snap.Buttons[0] = true

	fresh := st.Read()
	assert.Zero(t, fresh.Axes[0])
	assert.False(t, fresh.Buttons[0])
}

func TestStoreSetAxisBounds(t *testing.T) {
	st := NewStore()
	st.Resize("pad", 2, 4)

	require.True(t, st.SetAxis(0, 0.5))
	require.True(t, st.SetAxis(1, -0.5))
	assert.False(t, st.SetAxis(2, 1.0), "out-of-range axis must be dropped")
	assert.False(t, st.SetAxis(-1, 1.0))

	snap := st.Read()
	assert.Equal(t, []float64{0.5, -0.5}, snap.Axes)
}

func TestStoreSetButtonBounds(t *testing.T) {
	st := NewStore()
	st.Resize("pad", 0, 2)

	require.True(t, st.SetButton(1, true))
	assert.False(t, st.SetButton(2, true), "out-of-range button must be dropped")

	snap := st.Read()
	assert.Equal(t, []bool{false, true}, snap.Buttons)
}

func TestStoreClear(t *testing.T) {
	st := NewStore()
	st.Resize("pad", 2, 2)
	st.SetButton(0, true)

	st.Clear()
	snap := st.Read()
	assert.False(t, snap.Connected)
	assert.Empty(t, snap.Axes)
	assert.Empty(t, snap.Buttons)
}

// A reader must never observe axes from one device generation and buttons
// from another while resizes race with reads.
func TestStoreNoTornReads(t *testing.T) {
	st := NewStore()
	st.Resize("a", 2, 4)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if i%2 == 0 {
				st.Resize("a", 2, 4)
			} else {
				st.Resize("b", 6, 8)
			}
		}
	}()

	for i := 0; i < 10000; i++ {
		snap := st.Read()
		switch len(snap.Axes) {
		case 2:
			require.Len(t, snap.Buttons, 4)
			require.Equal(t, "a", snap.Name)
		case 6:
			require.Len(t, snap.Buttons, 8)
			require.Equal(t, "b", snap.Name)
		default:
			t.Fatalf("unexpected axis count %d", len(snap.Axes))
		}
	}

	close(done)
	wg.Wait()
}

func TestSnapshotClone(t *testing.T) {
	orig := Snapshot{
		Connected: true,
		Name:      "pad",
		Axes:      []float64{0.1, 0.2},
		Buttons:   []bool{true, false},
	}
	clone := orig.Clone()
	clone.Axes[0] = 0.9
	clone.Buttons[1] = true

	assert.Equal(t, 0.1, orig.Axes[0])
	assert.False(t, orig.Buttons[1])
}
