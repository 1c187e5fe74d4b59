package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State holds the 12-element rigid-body state. Position is in the earth
// (NED) frame, Attitude is the roll/pitch/yaw Euler triple in radians,
// Velocity and Rates are the linear and angular velocity in the body
// frame. The zero value is a valid all-zero state.
type State struct {
	position mgl64.Vec3
	attitude mgl64.Vec3
	velocity mgl64.Vec3
	rates    mgl64.Vec3
}

func (s *State) Position() mgl64.Vec3 { return s.position }
func (s *State) Attitude() mgl64.Vec3 { return s.attitude }
func (s *State) Velocity() mgl64.Vec3 { return s.velocity }
func (s *State) Rates() mgl64.Vec3    { return s.rates }

func (s *State) SetPosition(p mgl64.Vec3) { s.position = p }
func (s *State) SetAttitude(a mgl64.Vec3) { s.attitude = a }
func (s *State) SetVelocity(v mgl64.Vec3) { s.velocity = v }
func (s *State) SetRates(w mgl64.Vec3)    { s.rates = w }

// Roll, Pitch and Yaw expose the attitude components by name.
func (s *State) Roll() float64  { return s.attitude[0] }
func (s *State) Pitch() float64 { return s.attitude[1] }
func (s *State) Yaw() float64   { return s.attitude[2] }

// Clone returns an independent copy; mutating either state afterwards
// does not affect the other.
func (s *State) Clone() State {
	return *s
}

// CopyFrom overwrites all four vectors from other.
func (s *State) CopyFrom(other *State) {
	*s = *other
}

// Flatten returns the state as a fixed-order 12-element sequence:
// position, attitude, velocity, rates.
func (s *State) Flatten() [12]float64 {
	return flatten(s.position, s.attitude, s.velocity, s.rates)
}

// IsValid reports whether every state component is finite.
func (s *State) IsValid() bool {
	for _, v := range s.Flatten() {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func flatten(p, a, v, w mgl64.Vec3) [12]float64 {
	return [12]float64{
		p[0], p[1], p[2],
		a[0], a[1], a[2],
		v[0], v[1], v[2],
		w[0], w[1], w[2],
	}
}
