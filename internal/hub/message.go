package hub

import (
	"time"

	"github.com/soar/JoystickCommander/internal/joystick"
)

// Frame is a WebSocket message sent from server to viewer. Snapshots are
// small (a handful of axes and buttons), so every frame carries the full
// state; there is no delta encoding to fall out of sync with.
type Frame struct {
	Type      string             `json:"type"` // "full"
	Seq       int64              `json:"seq"`
	Timestamp int64              `json:"timestamp"` // Unix milliseconds
	Data      *joystick.Snapshot `json:"data"`
}

// NewFullFrame creates a frame carrying the complete device snapshot.
func NewFullFrame(seq int64, snap *joystick.Snapshot) *Frame {
	return &Frame{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      snap,
	}
}
