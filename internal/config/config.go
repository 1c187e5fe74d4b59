package config

import (
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/tleroux/flightdyn/internal/rigid"
	"github.com/tleroux/flightdyn/internal/vehicle"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultGravity  = 9.81
)

type Config struct {
	Dt            float64       `yaml:"dt"`
	Duration      float64       `yaml:"duration"`
	Gravity       float64       `yaml:"gravity"`
	ValidateState bool          `yaml:"validate_state"`
	Vehicle       VehicleConfig `yaml:"vehicle"`
	InitState     StateConfig   `yaml:"init_state"`
	Input         InputConfig   `yaml:"input"`
}

type VehicleConfig struct {
	Mass    float64 `yaml:"mass"`
	Jx      float64 `yaml:"jx"`
	Jy      float64 `yaml:"jy"`
	Jz      float64 `yaml:"jz"`
	Jxz     float64 `yaml:"jxz"`
	Drag    float64 `yaml:"drag"`
	AngDrag float64 `yaml:"ang_drag"`
}

type StateConfig struct {
	North float64 `yaml:"north"`
	East  float64 `yaml:"east"`
	Down  float64 `yaml:"down"`
	Roll  float64 `yaml:"roll"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
	U     float64 `yaml:"u"`
	V     float64 `yaml:"v"`
	W     float64 `yaml:"w"`
	P     float64 `yaml:"p"`
	Q     float64 `yaml:"q"`
	R     float64 `yaml:"r"`
}

// InputConfig is the commanded body-frame thrust force and moment.
type InputConfig struct {
	Fx float64 `yaml:"fx"`
	Fy float64 `yaml:"fy"`
	Fz float64 `yaml:"fz"`
	Mx float64 `yaml:"mx"`
	My float64 `yaml:"my"`
	Mz float64 `yaml:"mz"`
}

func DefaultConfig() *Config {
	veh := vehicle.Default()
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		Gravity:       DefaultGravity,
		ValidateState: true,
		Vehicle: VehicleConfig{
			Mass:    veh.Mass,
			Jx:      veh.Jx,
			Jy:      veh.Jy,
			Jz:      veh.Jz,
			Jxz:     veh.Jxz,
			Drag:    veh.Drag,
			AngDrag: veh.AngDrag,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetVehicle builds the vehicle described by the config.
func (c *Config) GetVehicle() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		Mass:    c.Vehicle.Mass,
		Jx:      c.Vehicle.Jx,
		Jy:      c.Vehicle.Jy,
		Jz:      c.Vehicle.Jz,
		Jxz:     c.Vehicle.Jxz,
		Drag:    c.Vehicle.Drag,
		AngDrag: c.Vehicle.AngDrag,
	}
}

// GetInitState builds the initial rigid-body state.
func (c *Config) GetInitState() rigid.State {
	var s rigid.State
	s.SetPosition(mgl64.Vec3{c.InitState.North, c.InitState.East, c.InitState.Down})
	s.SetAttitude(mgl64.Vec3{c.InitState.Roll, c.InitState.Pitch, c.InitState.Yaw})
	s.SetVelocity(mgl64.Vec3{c.InitState.U, c.InitState.V, c.InitState.W})
	s.SetRates(mgl64.Vec3{c.InitState.P, c.InitState.Q, c.InitState.R})
	return s
}

// GetThrust returns the commanded body-frame force and moment.
func (c *Config) GetThrust() (force, moment mgl64.Vec3) {
	return mgl64.Vec3{c.Input.Fx, c.Input.Fy, c.Input.Fz},
		mgl64.Vec3{c.Input.Mx, c.Input.My, c.Input.Mz}
}
