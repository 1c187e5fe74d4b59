package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tleroux/flightdyn/internal/sim"
)

type ExportData struct {
	Name     string             `json:"name"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	States   [][12]float64      `json:"states"`
	Derivs   [][12]float64      `json:"derivatives,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full result, including the per-step derivative
// rows, to w.
func ExportJSON(w io.Writer, name string, dt, duration float64, result *sim.Result) error {
	data := ExportData{
		Name:     name,
		Dt:       dt,
		Duration: duration,
		Steps:    len(result.Times),
		Times:    result.Times,
		States:   result.States,
		Derivs:   result.Derivs,
		Metrics:  result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONFile writes a full result to path.
func ExportJSONFile(path, name string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, name, dt, duration, result)
}
