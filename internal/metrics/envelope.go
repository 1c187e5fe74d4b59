package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tleroux/flightdyn/internal/rigid"
)

// Envelope reports the fraction of samples inside the attitude/rate
// limits. Pitch excursions toward ±90° matter most: the Euler-rate
// transform degenerates there.
type Envelope struct {
	name       string
	maxPitch   float64
	maxRate    float64
	violations int
	samples    int
}

func NewEnvelope(maxPitch, maxRate float64) *Envelope {
	return &Envelope{
		name:     "envelope",
		maxPitch: maxPitch,
		maxRate:  maxRate,
	}
}

func (e *Envelope) Name() string { return e.name }

func (e *Envelope) Observe(s *rigid.State, _, _ mgl64.Vec3, _ float64) {
	e.samples++
	if math.Abs(s.Pitch()) > e.maxPitch || s.Rates().Len() > e.maxRate {
		e.violations++
	}
}

func (e *Envelope) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Envelope) Reset() {
	e.violations = 0
	e.samples = 0
}
