// Package sim drives the rigid-body kernel: per tick it sums the force
// models, feeds the kernel, steps it and records the trajectory.
package sim

import (
	"context"
	"fmt"

	"github.com/tleroux/flightdyn/internal/forces"
	"github.com/tleroux/flightdyn/internal/rigid"
	"github.com/tleroux/flightdyn/internal/vehicle"
)

type Simulator struct {
	veh       *vehicle.Vehicle
	model     forces.Model
	metrics   []Metric
	observers []Observer
}

func New(veh *vehicle.Vehicle, model forces.Model) *Simulator {
	return &Simulator{
		veh:       veh,
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run simulates from s0 for cfg.Duration and returns the recorded
// trajectory. The kernel sequencing per tick is: sum forces, set input,
// compute derivatives against the current state, then step.
func (s *Simulator) Run(ctx context.Context, s0 rigid.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		States:  make([][12]float64, 0, steps+1),
		Derivs:  make([][12]float64, 0, steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	kin := rigid.NewKinematics(cfg.Dt)
	kin.SetState(s0)
	t := 0.0

	state := kin.State()
	result.Times = append(result.Times, t)
	result.States = append(result.States, state.Flatten())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		state = kin.State()
		force, torque := s.model.ForceTorque(&state, t)

		for _, m := range s.metrics {
			m.Observe(&state, force, torque, t)
		}

		kin.SetInput(force, torque)
		kin.ComputeDerivatives(s.veh.Inertia(), s.veh.RotationMatrix(state.Attitude()))
		kin.Step()
		t += cfg.Dt
		result.StepsTaken++

		state = kin.State()
		deriv := kin.Derivatives()

		for _, obs := range s.observers {
			obs.OnStep(&state, deriv, t)
		}

		if cfg.ValidateState && !state.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		result.Times = append(result.Times, t)
		result.States = append(result.States, state.Flatten())
		result.Derivs = append(result.Derivs, deriv.Flatten())
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the simulation, invoking callback before each
// step; returning false from the callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, s0 rigid.State, cfg Config, callback func(*rigid.State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	kin := rigid.NewKinematics(cfg.Dt)
	kin.SetState(s0)
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		state := kin.State()
		if !callback(&state, t) {
			return nil
		}

		force, torque := s.model.ForceTorque(&state, t)
		kin.SetInput(force, torque)
		kin.ComputeDerivatives(s.veh.Inertia(), s.veh.RotationMatrix(state.Attitude()))
		kin.Step()
		t += cfg.Dt

		if cfg.ValidateState {
			state = kin.State()
			if !state.IsValid() {
				return fmt.Errorf("invalid state at t=%.4f", t)
			}
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
