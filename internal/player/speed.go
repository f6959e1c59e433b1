package player

import (
	"math"
	"time"
)

const (
	MinSpeed     = 0.5
	MaxSpeed     = 3.0
	SpeedStep    = 0.5
	DefaultSpeed = 1.0

	// BaseCadence is the interval between automatic advances at speed 1.
	BaseCadence = time.Second
)

// ClampSpeed limits speed to [MinSpeed, MaxSpeed] and snaps it to the
// nearest SpeedStep. NaN maps to DefaultSpeed.
func ClampSpeed(speed float64) float64 {
	if math.IsNaN(speed) {
		return DefaultSpeed
	}
	speed = math.Round(speed/SpeedStep) * SpeedStep
	return math.Min(MaxSpeed, math.Max(MinSpeed, speed))
}

// Cadence is the interval between automatic advances at speed.
func Cadence(speed float64) time.Duration {
	return time.Duration(float64(BaseCadence) / ClampSpeed(speed))
}
