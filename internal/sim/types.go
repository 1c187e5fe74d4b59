package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tleroux/flightdyn/internal/rigid"
)

// Metric accumulates a scalar statistic over a simulation run.
type Metric interface {
	Name() string
	Observe(s *rigid.State, force, torque mgl64.Vec3, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every integration step.
type Observer interface {
	OnStep(s *rigid.State, d rigid.Derivatives, t float64)
}

// Config controls one simulation run.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result holds a completed run. States and Derivs are flattened
// 12-element rows in fixed order: position, attitude, velocity, rates.
type Result struct {
	Times      []float64
	States     [][12]float64
	Derivs     [][12]float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// SimError tags a failure with the step and time it occurred at.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
