package rigid_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tleroux/flightdyn/internal/rigid"
)

var _ = Describe("State", func() {
	It("starts all zero", func() {
		var s rigid.State
		for _, v := range s.Flatten() {
			Expect(v).To(BeZero())
		}
	})

	It("clones into a fully independent instance", func() {
		var s rigid.State
		s.SetPosition(mgl64.Vec3{1, 2, 3})
		s.SetRates(mgl64.Vec3{4, 5, 6})

		c := s.Clone()
		c.SetPosition(mgl64.Vec3{9, 9, 9})
		c.SetRates(mgl64.Vec3{8, 8, 8})

		vec3Close(s.Position(), 1, 2, 3)
		vec3Close(s.Rates(), 4, 5, 6)
		vec3Close(c.Position(), 9, 9, 9)
	})

	It("copies all four vectors on CopyFrom", func() {
		var src, dst rigid.State
		src.SetPosition(mgl64.Vec3{1, 0, 0})
		src.SetAttitude(mgl64.Vec3{0, 1, 0})
		src.SetVelocity(mgl64.Vec3{0, 0, 1})
		src.SetRates(mgl64.Vec3{1, 1, 1})

		dst.CopyFrom(&src)
		Expect(dst.Flatten()).To(Equal(src.Flatten()))

		src.SetPosition(mgl64.Vec3{7, 7, 7})
		vec3Close(dst.Position(), 1, 0, 0)
	})

	It("exposes attitude components by name", func() {
		var s rigid.State
		s.SetAttitude(mgl64.Vec3{0.1, 0.2, 0.3})
		Expect(s.Roll()).To(Equal(0.1))
		Expect(s.Pitch()).To(Equal(0.2))
		Expect(s.Yaw()).To(Equal(0.3))
	})

	DescribeTable("IsValid",
		func(v mgl64.Vec3, valid bool) {
			var s rigid.State
			s.SetVelocity(v)
			Expect(s.IsValid()).To(Equal(valid))
		},
		Entry("zero", mgl64.Vec3{}, true),
		Entry("finite", mgl64.Vec3{1, -2, 3}, true),
		Entry("NaN", mgl64.Vec3{1, math.NaN(), 0}, false),
		Entry("+Inf", mgl64.Vec3{math.Inf(1), 0, 0}, false),
		Entry("-Inf", mgl64.Vec3{0, 0, math.Inf(-1)}, false),
	)
})
