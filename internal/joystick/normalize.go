package joystick

import "math"

// DefaultDeadzone is the fraction of full deflection below which an axis
// reads as exactly zero. Overridable through configuration.
const DefaultDeadzone = 0.1

// NormalizeAxis converts a raw SDL axis value (-32768..32767) to -1.0..1.0.
// The raw range is asymmetric, so the result is clamped after dividing by
// 32767. Values inside the deadzone are snapped to exactly 0.
func NormalizeAxis(raw int16, deadzone float64) float64 {
	v := float64(raw) / 32767.0
	if v > 1.0 {
		v = 1.0
	}
	if v < -1.0 {
		v = -1.0
	}
	if math.Abs(v) < deadzone {
		return 0
	}
	return v
}
