// Package forces provides body-frame force and torque generators that
// feed the rigid-body kernel.
package forces

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tleroux/flightdyn/internal/rigid"
	"github.com/tleroux/flightdyn/internal/vehicle"
)

const DefaultGravity = 9.81

// Model produces a body-frame force and torque for the current state.
type Model interface {
	ForceTorque(s *rigid.State, t float64) (force, torque mgl64.Vec3)
}

// Gravity applies the vehicle's weight, rotated from the earth frame
// (NED, +z down) into the body frame.
type Gravity struct {
	Vehicle *vehicle.Vehicle
	G       float64
}

func NewGravity(v *vehicle.Vehicle) *Gravity {
	return &Gravity{Vehicle: v, G: DefaultGravity}
}

func (g *Gravity) ForceTorque(s *rigid.State, _ float64) (mgl64.Vec3, mgl64.Vec3) {
	weight := mgl64.Vec3{0, 0, g.Vehicle.Mass * g.G}
	rbe := g.Vehicle.RotationMatrix(s.Attitude())
	return rbe.Transpose().Mul3x1(weight), mgl64.Vec3{}
}

// Drag applies linear translational and rotational damping from the
// vehicle's coefficients. It is a stand-in for a full aerodynamic
// model, sufficient to keep trajectories bounded.
type Drag struct {
	Vehicle *vehicle.Vehicle
}

func NewDrag(v *vehicle.Vehicle) *Drag {
	return &Drag{Vehicle: v}
}

func (d *Drag) ForceTorque(s *rigid.State, _ float64) (mgl64.Vec3, mgl64.Vec3) {
	return s.Velocity().Mul(-d.Vehicle.Drag), s.Rates().Mul(-d.Vehicle.AngDrag)
}

// Thrust applies a constant commanded body-frame force and moment.
type Thrust struct {
	Force  mgl64.Vec3
	Moment mgl64.Vec3
}

func (t *Thrust) ForceTorque(_ *rigid.State, _ float64) (mgl64.Vec3, mgl64.Vec3) {
	return t.Force, t.Moment
}

// Composite sums the contributions of a set of models.
type Composite struct {
	models []Model
}

func NewComposite(models ...Model) *Composite {
	return &Composite{models: models}
}

func (c *Composite) Add(m Model) { c.models = append(c.models, m) }

func (c *Composite) ForceTorque(s *rigid.State, t float64) (mgl64.Vec3, mgl64.Vec3) {
	var force, torque mgl64.Vec3
	for _, m := range c.models {
		f, tq := m.ForceTorque(s, t)
		force = force.Add(f)
		torque = torque.Add(tq)
	}
	return force, torque
}
