// Package vehicle supplies the inertial parameters and frame rotations
// consumed by the rigid-body kernel.
package vehicle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tleroux/flightdyn/internal/rigid"
)

// Vehicle describes one airframe: mass, inertia tensor terms and the
// damping coefficients used by the force models. The kernel reads the
// inertial parameters and the body-to-earth rotation; it never mutates
// a Vehicle.
type Vehicle struct {
	Mass float64
	Jx   float64
	Jy   float64
	Jz   float64
	Jxz  float64

	// Linear and rotational damping, consumed by forces.Drag.
	Drag    float64
	AngDrag float64
}

// Default returns parameters for a small fixed-wing UAV.
func Default() *Vehicle {
	return &Vehicle{
		Mass:    13.5,
		Jx:      0.8244,
		Jy:      1.135,
		Jz:      1.759,
		Jxz:     0.1204,
		Drag:    0.2,
		AngDrag: 0.05,
	}
}

// Inertia returns the inertial parameters in kernel form.
func (v *Vehicle) Inertia() rigid.Inertia {
	return rigid.Inertia{Mass: v.Mass, Jx: v.Jx, Jy: v.Jy, Jz: v.Jz, Jxz: v.Jxz}
}

// RotationMatrix returns the body-to-earth direction cosine matrix for
// the given roll/pitch/yaw attitude (Z-Y-X rotation order). Its
// transpose maps earth-frame vectors into the body frame.
func (v *Vehicle) RotationMatrix(attitude mgl64.Vec3) mgl64.Mat3 {
	sr, cr := math.Sincos(attitude[0])
	sp, cp := math.Sincos(attitude[1])
	sy, cy := math.Sincos(attitude[2])
	return mgl64.Mat3FromRows(
		mgl64.Vec3{cp * cy, sr*sp*cy - cr*sy, cr*sp*cy + sr*sy},
		mgl64.Vec3{cp * sy, sr*sp*sy + cr*cy, cr*sp*sy - sr*cy},
		mgl64.Vec3{-sp, sr * cp, cr * cp},
	)
}

func (v *Vehicle) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":     v.Mass,
		"jx":       v.Jx,
		"jy":       v.Jy,
		"jz":       v.Jz,
		"jxz":      v.Jxz,
		"drag":     v.Drag,
		"ang_drag": v.AngDrag,
	}
}

func (v *Vehicle) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		v.Mass = value
	case "jx":
		v.Jx = value
	case "jy":
		v.Jy = value
	case "jz":
		v.Jz = value
	case "jxz":
		v.Jxz = value
	case "drag":
		v.Drag = value
	case "ang_drag":
		v.AngDrag = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
