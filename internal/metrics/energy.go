package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tleroux/flightdyn/internal/rigid"
	"github.com/tleroux/flightdyn/internal/vehicle"
)

// Energy tracks the vehicle's total mechanical energy: translational
// and rotational kinetic energy plus gravitational potential. Altitude
// is -z in the NED convention.
type Energy struct {
	name    string
	veh     *vehicle.Vehicle
	gravity float64
	samples int
	total   float64
}

func NewEnergy(veh *vehicle.Vehicle, gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		veh:     veh,
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *rigid.State, _, _ mgl64.Vec3, _ float64) {
	v := s.Velocity()
	w := s.Rates()
	j := e.veh.Inertia().Tensor()

	ke := 0.5 * e.veh.Mass * v.Dot(v)
	keRot := 0.5 * w.Dot(j.Mul3x1(w))
	pe := e.veh.Mass * e.gravity * -s.Position()[2]

	e.total += ke + keRot + pe
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift records the largest relative deviation from the initial
// energy over a run.
type EnergyDrift struct {
	name     string
	inner    *Energy
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(veh *vehicle.Vehicle, gravity float64) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		inner: NewEnergy(veh, gravity),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *rigid.State, force, torque mgl64.Vec3, t float64) {
	e.inner.Reset()
	e.inner.Observe(s, force, torque, t)
	energy := e.inner.Value()

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
