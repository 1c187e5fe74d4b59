package rigid_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tleroux/flightdyn/internal/rigid"
)

const tol = 1e-12

var unitInertia = rigid.Inertia{Mass: 1, Jx: 1, Jy: 1, Jz: 1}

func vec3Close(v mgl64.Vec3, x, y, z float64) {
	GinkgoHelper()
	Expect(v[0]).To(BeNumerically("~", x, tol))
	Expect(v[1]).To(BeNumerically("~", y, tol))
	Expect(v[2]).To(BeNumerically("~", z, tol))
}

var _ = Describe("Kinematics", func() {
	var kin *rigid.Kinematics

	BeforeEach(func() {
		kin = rigid.NewKinematics(0.01)
	})

	Describe("ComputeDerivatives", func() {
		It("produces zero derivatives at rest", func() {
			kin.ComputeDerivatives(rigid.Inertia{Mass: 2, Jx: 1, Jy: 2, Jz: 3}, mgl64.Ident3())

			d := kin.Derivatives()
			for _, v := range d.Flatten() {
				Expect(v).To(BeZero())
			}
		})

		It("rotates body velocity into the earth frame", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 0, 0})
			kin.SetState(s)

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			vec3Close(kin.Derivatives().Position, 1, 0, 0)
		})

		It("uses the supplied rotation matrix for the position derivative", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 0, 0})
			kin.SetState(s)

			// 90° yaw: body x maps to earth y.
			yaw90 := mgl64.Mat3FromRows(
				mgl64.Vec3{0, -1, 0},
				mgl64.Vec3{1, 0, 0},
				mgl64.Vec3{0, 0, 1},
			)
			kin.ComputeDerivatives(unitInertia, yaw90)
			vec3Close(kin.Derivatives().Position, 0, 1, 0)
		})

		It("reduces the Euler-rate transform to identity at zero attitude", func() {
			var s rigid.State
			s.SetRates(mgl64.Vec3{0.3, -0.2, 0.7})
			kin.SetState(s)

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			vec3Close(kin.Derivatives().Attitude, 0.3, -0.2, 0.7)
		})

		It("applies the Euler-rate transform at non-zero roll", func() {
			var s rigid.State
			s.SetAttitude(mgl64.Vec3{math.Pi / 2, 0, 0})
			s.SetRates(mgl64.Vec3{0, 1, 0})
			kin.SetState(s)

			// At 90° roll a pure pitch rate appears as yaw rate.
			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			d := kin.Derivatives().Attitude
			Expect(d[0]).To(BeNumerically("~", 0, tol))
			Expect(d[1]).To(BeNumerically("~", 0, tol))
			Expect(d[2]).To(BeNumerically("~", 1, tol))
		})

		It("recovers Newton's law at zero angular velocity", func() {
			kin.SetInput(mgl64.Vec3{6, -3, 9}, mgl64.Vec3{})
			kin.ComputeDerivatives(rigid.Inertia{Mass: 3, Jx: 1, Jy: 1, Jz: 1}, mgl64.Ident3())

			vec3Close(kin.Derivatives().Velocity, 2, -1, 3)
		})

		It("subtracts the rotating-frame correction from the force term", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 0, 0})
			s.SetRates(mgl64.Vec3{0, 0, 2})
			kin.SetState(s)

			// omega x v = (0,0,2) x (1,0,0) = (0,2,0)
			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			vec3Close(kin.Derivatives().Velocity, 0, -2, 0)
		})

		It("holds a torque-free spin about a principal axis steady", func() {
			var s rigid.State
			s.SetRates(mgl64.Vec3{0, 0, 5})
			kin.SetState(s)

			kin.ComputeDerivatives(rigid.Inertia{Mass: 1, Jx: 1, Jy: 2, Jz: 3}, mgl64.Ident3())
			vec3Close(kin.Derivatives().Rates, 0, 0, 0)
		})

		It("produces the gyroscopic coupling term off the principal axes", func() {
			var s rigid.State
			s.SetRates(mgl64.Vec3{1, 1, 0})
			kin.SetState(s)

			// J*w = (1,2,0); w x (J*w) = (0,0,1); J^-1 applied to -that.
			kin.ComputeDerivatives(rigid.Inertia{Mass: 1, Jx: 1, Jy: 2, Jz: 3}, mgl64.Ident3())
			vec3Close(kin.Derivatives().Rates, 0, 0, -1.0/3.0)
		})

		It("inverts the coupled x-z inertia block", func() {
			kin.SetInput(mgl64.Vec3{}, mgl64.Vec3{7, 0, 0})
			kin.ComputeDerivatives(rigid.Inertia{Mass: 1, Jx: 2, Jy: 5, Jz: 4, Jxz: 1}, mgl64.Ident3())

			// gamma = 2*4 - 1 = 7; J^-1 row0 = (4/7, 0, 1/7).
			d := kin.Derivatives().Rates
			vec3Close(d, 4, 0, 1)

			// Consistency: J * ratesDot must reproduce the torque.
			back := rigid.Inertia{Mass: 1, Jx: 2, Jy: 5, Jz: 4, Jxz: 1}.Tensor().Mul3x1(d)
			vec3Close(back, 7, 0, 0)
		})

		It("propagates non-finite values for zero mass", func() {
			kin.SetInput(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})
			kin.ComputeDerivatives(rigid.Inertia{Mass: 0, Jx: 1, Jy: 1, Jz: 1}, mgl64.Ident3())

			Expect(math.IsInf(kin.Derivatives().Velocity[0], 1)).To(BeTrue())
		})

		It("propagates non-finite values for a singular inertia tensor", func() {
			kin.SetInput(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
			// Jx*Jz == Jxz^2 makes the x-z block singular.
			kin.ComputeDerivatives(rigid.Inertia{Mass: 1, Jx: 1, Jy: 1, Jz: 1, Jxz: 1}, mgl64.Ident3())

			d := kin.Derivatives().Rates
			Expect(math.IsInf(d[0], 0) || math.IsNaN(d[0])).To(BeTrue())
		})

		It("evaluates all derivatives against the pre-call state", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 0, 0})
			s.SetRates(mgl64.Vec3{0, 0, 1})
			kin.SetState(s)
			kin.SetInput(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{})

			kin.ComputeDerivatives(rigid.Inertia{Mass: 2, Jx: 1, Jy: 1, Jz: 1}, mgl64.Ident3())

			// velocityDot = f/m - w x v = (1,0,0) - (0,1,0)
			vec3Close(kin.Derivatives().Velocity, 1, -1, 0)
			// positionDot uses the original velocity, not velocity + dt*velocityDot.
			vec3Close(kin.Derivatives().Position, 1, 0, 0)
		})
	})

	Describe("Step", func() {
		It("advances position linearly by derivative times dt", func() {
			kin = rigid.NewKinematics(0.1)
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{2, 0, 0})
			kin.SetState(s)

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			kin.Step()

			got := kin.State()
			vec3Close(got.Position(), 0.2, 0, 0)
		})

		It("leaves the state unchanged for dt = 0", func() {
			kin = rigid.NewKinematics(0)
			var s rigid.State
			s.SetPosition(mgl64.Vec3{1, 2, 3})
			s.SetVelocity(mgl64.Vec3{4, 5, 6})
			s.SetRates(mgl64.Vec3{0.1, 0.2, 0.3})
			kin.SetState(s)
			kin.SetInput(mgl64.Vec3{100, 100, 100}, mgl64.Vec3{50, 50, 50})

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			kin.Step()

			got := kin.State()
			Expect(got.Flatten()).To(Equal(s.Flatten()))
		})

		It("reuses stale derivatives when stepped twice", func() {
			kin = rigid.NewKinematics(0.1)
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 0, 0})
			kin.SetState(s)

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())
			kin.Step()
			kin.Step()

			got := kin.State()
			vec3Close(got.Position(), 0.2, 0, 0)
		})
	})

	Describe("state transfer", func() {
		It("returns an isolated copy from State", func() {
			var s rigid.State
			s.SetPosition(mgl64.Vec3{1, 2, 3})
			kin.SetState(s)

			got := kin.State()
			got.SetPosition(mgl64.Vec3{9, 9, 9})

			cur := kin.State()
			vec3Close(cur.Position(), 1, 2, 3)
		})

		It("copies rather than aliases on SetState", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 1, 1})
			kin.SetState(s)

			s.SetVelocity(mgl64.Vec3{5, 5, 5})
			cur := kin.State()
			vec3Close(cur.Velocity(), 1, 1, 1)
		})

		It("round trips through SetState and State by value", func() {
			var s rigid.State
			s.SetPosition(mgl64.Vec3{1, 2, 3})
			s.SetAttitude(mgl64.Vec3{0.1, 0.2, 0.3})
			s.SetVelocity(mgl64.Vec3{4, 5, 6})
			s.SetRates(mgl64.Vec3{7, 8, 9})

			kin.SetState(s)
			got := kin.State()

			Expect(got.Flatten()).To(Equal(s.Flatten()))
		})

		It("writes out to a caller-owned state without touching its own", func() {
			var s rigid.State
			s.SetAttitude(mgl64.Vec3{0.5, 0, 0})
			kin.SetState(s)

			var dst rigid.State
			dst.SetAttitude(mgl64.Vec3{9, 9, 9})
			kin.WriteState(&dst)

			vec3Close(dst.Attitude(), 0.5, 0, 0)
			cur := kin.State()
			vec3Close(cur.Attitude(), 0.5, 0, 0)
		})
	})

	Describe("Derivatives.Flatten", func() {
		It("serializes in position, attitude, velocity, rates order", func() {
			var s rigid.State
			s.SetVelocity(mgl64.Vec3{1, 2, 3})
			s.SetRates(mgl64.Vec3{0.1, 0.2, 0.3})
			kin.SetState(s)
			kin.SetInput(mgl64.Vec3{4, 5, 6}, mgl64.Vec3{})

			kin.ComputeDerivatives(unitInertia, mgl64.Ident3())

			d := kin.Derivatives()
			flat := d.Flatten()
			Expect(flat[0:3]).To(Equal([]float64{d.Position[0], d.Position[1], d.Position[2]}))
			Expect(flat[3:6]).To(Equal([]float64{d.Attitude[0], d.Attitude[1], d.Attitude[2]}))
			Expect(flat[6:9]).To(Equal([]float64{d.Velocity[0], d.Velocity[1], d.Velocity[2]}))
			Expect(flat[9:12]).To(Equal([]float64{d.Rates[0], d.Rates[1], d.Rates[2]}))
		})
	})

	Describe("Input", func() {
		It("persists the last set input verbatim", func() {
			kin.SetInput(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6})
			kin.SetInput(mgl64.Vec3{7, 8, 9}, mgl64.Vec3{10, 11, 12})

			force, torque := kin.Input()
			vec3Close(force, 7, 8, 9)
			vec3Close(torque, 10, 11, 12)
		})
	})
})
