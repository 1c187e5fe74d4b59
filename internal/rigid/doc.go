// Package rigid implements 6-DOF rigid-body kinematics and dynamics.
//
// The package provides the numerical kernel of the simulator:
//
//   - [State]: 12-element rigid-body state (position, Euler attitude,
//     body-frame linear and angular velocity)
//   - [Inertia]: mass and inertia tensor parameters
//   - [Kinematics]: derivative computation and fixed-step Forward-Euler
//     integration
//
// # Coordinate Conventions
//
// Position is expressed in a fixed earth (NED) frame; velocities are
// expressed in the body frame. Attitude is the roll/pitch/yaw Euler
// triple in radians, which is singular at pitch = ±90°. The Euler-rate
// transform is used as given; near the singularity the attitude
// derivative degenerates to Inf/NaN rather than raising an error.
//
// # Trusted Inputs
//
// The kernel performs no validation. Zero mass, a singular inertia
// tensor, or an attitude at the singularity propagate as non-finite
// values; physical plausibility is the caller's responsibility.
//
// # Thread Safety
//
// Kinematics instances are NOT thread-safe. Each simulated vehicle must
// own its own instance; independent instances may run on independent
// goroutines.
package rigid
