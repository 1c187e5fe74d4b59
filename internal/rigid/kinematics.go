package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Inertia holds the inertial parameters supplied by the vehicle: total
// mass and the body-axis inertia tensor terms. Jxz is the only product
// of inertia; Jxy and Jyz vanish under the usual aircraft symmetry
// assumption.
type Inertia struct {
	Mass float64
	Jx   float64
	Jy   float64
	Jz   float64
	Jxz  float64
}

// Tensor returns the full symmetric inertia tensor.
func (i Inertia) Tensor() mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{i.Jx, 0, -i.Jxz},
		mgl64.Vec3{0, i.Jy, 0},
		mgl64.Vec3{-i.Jxz, 0, i.Jz},
	)
}

// inverse exploits the tensor's sparsity: only the x-z block couples.
// A singular tensor (gamma == 0 or Jy == 0) yields non-finite entries,
// which the kernel deliberately lets propagate.
func (i Inertia) inverse() mgl64.Mat3 {
	gamma := i.Jx*i.Jz - i.Jxz*i.Jxz
	return mgl64.Mat3FromRows(
		mgl64.Vec3{i.Jz / gamma, 0, i.Jxz / gamma},
		mgl64.Vec3{0, 1 / i.Jy, 0},
		mgl64.Vec3{i.Jxz / gamma, 0, i.Jx / gamma},
	)
}

// Derivatives holds the four state derivative vectors produced by
// [Kinematics.ComputeDerivatives].
type Derivatives struct {
	Position mgl64.Vec3
	Attitude mgl64.Vec3
	Velocity mgl64.Vec3
	Rates    mgl64.Vec3
}

// Flatten returns the derivatives as a fixed-order 12-element sequence
// (position, attitude, velocity, rates) for fixed-order numerical
// tooling such as external integrators or CSV writers.
func (d Derivatives) Flatten() [12]float64 {
	return flatten(d.Position, d.Attitude, d.Velocity, d.Rates)
}

// Kinematics owns one vehicle state and advances it by a fixed time
// step using explicit Forward-Euler integration. It is the trusted
// numerical kernel of the simulator: inputs are taken verbatim and
// degenerate parameters propagate as non-finite values.
type Kinematics struct {
	dt     float64
	state  State
	force  mgl64.Vec3
	torque mgl64.Vec3
	deriv  Derivatives
}

// NewKinematics returns an integrator with an all-zero state and the
// given fixed time step. The step must be positive; this is a caller
// contract, not checked here.
func NewKinematics(dt float64) *Kinematics {
	return &Kinematics{dt: dt}
}

// Dt returns the fixed integration time step.
func (k *Kinematics) Dt() float64 { return k.dt }

// SetInput stores the body-frame force and torque to apply on
// subsequent derivative computations. The input persists across steps
// until overwritten.
func (k *Kinematics) SetInput(force, torque mgl64.Vec3) {
	k.force = force
	k.torque = torque
}

// Input returns the most recently set body-frame force and torque.
func (k *Kinematics) Input() (force, torque mgl64.Vec3) {
	return k.force, k.torque
}

// ComputeDerivatives evaluates the rigid-body equations of motion at
// the current state and stored input, overwriting the previous
// derivatives. All four vectors are derived from the state as it stood
// on entry; none feeds into another within the call.
//
// rbe is the body-to-earth rotation matrix supplied by the vehicle; it
// is assumed orthonormal and is not verified.
func (k *Kinematics) ComputeDerivatives(inr Inertia, rbe mgl64.Mat3) {
	v := k.state.velocity
	w := k.state.rates

	// Translational kinematics: body velocity rotated into the earth frame.
	k.deriv.Position = rbe.Mul3x1(v)

	// Rotational kinematics: body rates mapped to Euler-angle rates.
	// Singular at pitch = ±90°.
	k.deriv.Attitude = eulerRateMatrix(k.state.Roll(), k.state.Pitch()).Mul3x1(w)

	// Translational dynamics in the rotating body frame.
	k.deriv.Velocity = k.force.Mul(1 / inr.Mass).Sub(w.Cross(v))

	// Rotational dynamics: Euler's equation with the gyroscopic term.
	j := inr.Tensor()
	k.deriv.Rates = inr.inverse().Mul3x1(k.torque.Sub(w.Cross(j.Mul3x1(w))))
}

// Step advances the state by one time step using the most recently
// computed derivatives. Callers must recompute derivatives between
// steps; stepping twice without doing so reuses stale derivatives.
func (k *Kinematics) Step() {
	k.state.position = k.state.position.Add(k.deriv.Position.Mul(k.dt))
	k.state.attitude = k.state.attitude.Add(k.deriv.Attitude.Mul(k.dt))
	k.state.velocity = k.state.velocity.Add(k.deriv.Velocity.Mul(k.dt))
	k.state.rates = k.state.rates.Add(k.deriv.Rates.Mul(k.dt))
}

// State returns an independent copy of the current state.
func (k *Kinematics) State() State {
	return k.state.Clone()
}

// SetState overwrites the internal state with a copy of s. The
// integrator never aliases caller-owned memory.
func (k *Kinematics) SetState(s State) {
	k.state.CopyFrom(&s)
}

// WriteState copies the current state values into dst, leaving the
// internal state untouched.
func (k *Kinematics) WriteState(dst *State) {
	dst.CopyFrom(&k.state)
}

// Derivatives returns the four derivative vectors from the most recent
// ComputeDerivatives call.
func (k *Kinematics) Derivatives() Derivatives {
	return k.deriv
}

// eulerRateMatrix builds the transform from body angular rates to
// Euler-angle rates at the given roll and pitch.
func eulerRateMatrix(roll, pitch float64) mgl64.Mat3 {
	sr, cr := math.Sincos(roll)
	tp := math.Tan(pitch)
	cp := math.Cos(pitch)
	return mgl64.Mat3FromRows(
		mgl64.Vec3{1, sr * tp, cr * tp},
		mgl64.Vec3{0, cr, -sr},
		mgl64.Vec3{0, sr / cp, cr / cp},
	)
}
