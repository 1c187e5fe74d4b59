package config

import "sort"

// Presets are named flight scenarios for the default vehicle.
var Presets = map[string]*Config{
	"cruise": {
		Dt: 0.01, Duration: 30.0, Gravity: DefaultGravity, ValidateState: true,
		InitState: StateConfig{Down: -100, U: 25.0},
		Input:     InputConfig{Fx: 5.0},
	},
	"freefall": {
		Dt: 0.01, Duration: 10.0, Gravity: DefaultGravity, ValidateState: true,
		InitState: StateConfig{Down: -500},
	},
	"spin": {
		Dt: 0.005, Duration: 20.0, Gravity: DefaultGravity, ValidateState: true,
		InitState: StateConfig{Down: -200, U: 15.0, P: 2.0},
	},
	"tumble": {
		Dt: 0.005, Duration: 15.0, Gravity: DefaultGravity, ValidateState: true,
		InitState: StateConfig{Down: -300, P: 1.0, Q: 0.5, R: 0.2},
	},
}

// GetPreset returns a copy of the named preset with the default
// vehicle filled in, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Vehicle = DefaultConfig().Vehicle
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
