package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/JoystickCommander/internal/joystick"
)

// resyncInterval is how often the last state is re-sent to all viewers,
// covering clients that joined mid-stream or dropped a frame.
const resyncInterval = 5 * time.Second

// Broadcaster forwards snapshot changes from the consumer to the hub.
type Broadcaster struct {
	hub     *Hub
	changes <-chan joystick.Snapshot

	mu   sync.Mutex // guards last and seq
	last joystick.Snapshot
	seq  int64
}

func NewBroadcaster(h *Hub, changes <-chan joystick.Snapshot) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

// Run forwards snapshots until the changes channel closes. Should be run in
// a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-b.changes:
			if !ok {
				return
			}
			b.send(snap)

		case <-ticker.C:
			b.mu.Lock()
			connected := b.last.Connected
			snap := b.last.Clone()
			b.mu.Unlock()
			if connected {
				b.send(snap)
			}
		}
	}
}

// SendInitialState delivers the current full state to a newly connected
// client so it does not wait for the next change or resync.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	frame := NewFullFrame(b.seq, &b.last)
	data, err := json.Marshal(frame)
	b.mu.Unlock()
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) send(snap joystick.Snapshot) {
	b.mu.Lock()
	b.seq++
	b.last = snap
	frame := NewFullFrame(b.seq, &snap)
	data, err := json.Marshal(frame)
	b.mu.Unlock()
	if err != nil {
		log.Printf("Error marshaling frame: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
