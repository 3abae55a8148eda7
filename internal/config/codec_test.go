package config

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Codec", func() {
	Describe("Decode", func() {
		DescribeTable("empty input yields the defaults",
			func(s string) {
				Expect(Decode(s)).To(Equal(DefaultParams()))
			},
			Entry("empty string", ""),
			Entry("marker only", "#"),
			Entry("whitespace", "  \t"),
			Entry("separators only", "#&&&"),
		)

		It("reads flags by presence alone", func() {
			p := Decode("#C&T=0&MS=false")
			Expect(p.Flags.Corners).To(BeTrue())
			Expect(p.Flags.Trace).To(BeTrue())
			Expect(p.ManualSpeedup).To(BeTrue())
			Expect(p.Flags.PrimaryAxis).To(BeFalse())
		})

		It("reads numeric entries", func() {
			p := Decode("#cA=5&cB=2&pA=37.5&bS=-1.25&sA=0.1&sB=-7")
			Expect(p.CornersA).To(Equal(5))
			Expect(p.CornersB).To(Equal(2))
			Expect(p.PercentageA).To(Equal(37.5))
			Expect(p.BaseSpeed).To(Equal(-1.25))
			Expect(p.SpeedupA).To(Equal(0.1))
			Expect(p.SpeedupB).To(Equal(-7.0))
		})

		It("accepts input without the marker", func() {
			Expect(Decode("cA=6&T").CornersA).To(Equal(6))
		})

		It("accepts a full link", func() {
			p := Decode("https://example.org/spin/#cA=7&C")
			Expect(p.CornersA).To(Equal(7))
			Expect(p.Flags.Corners).To(BeTrue())
		})

		DescribeTable("falls back to the default for unusable numbers",
			func(s string) {
				Expect(Decode(s)).To(Equal(DefaultParams()))
			},
			Entry("not a number", "#cA=four"),
			Entry("empty value", "#bS="),
			Entry("bare numeric code", "#pA"),
			Entry("fractional corners", "#cB=2.5"),
			Entry("negative corners", "#cA=-3"),
			Entry("too many corners", "#cA=1000000"),
			Entry("percentage out of range", "#pA=140"),
			Entry("NaN", "#sA=NaN"),
			Entry("infinity", "#bS=+Inf"),
		)

		It("uses the first usable value for repeated codes", func() {
			p := Decode("#cA=x&cA=6&cA=7")
			Expect(p.CornersA).To(Equal(6))
		})

		It("ignores unknown entries and codes by case", func() {
			p := Decode("#zz=1&ca=9&c&t&==&=5")
			Expect(p).To(Equal(DefaultParams()))
		})

		It("never panics on arbitrary text", func() {
			inputs := []string{"#=", "&=&", "#cA==3", "###", "cA=3=4", "\x00\xff", strings.Repeat("&", 1000)}
			for _, in := range inputs {
				Expect(func() { Decode(in) }).NotTo(Panic())
			}
		})
	})

	Describe("Encode", func() {
		It("writes the defaults without any flag", func() {
			Expect(Encode(DefaultParams())).To(Equal("#cA=4&cB=3&pA=60&bS=2&sA=3&sB=-4"))
		})

		It("writes true flags as bare codes in table order", func() {
			p := DefaultParams()
			p.Flags.Trace = true
			p.Flags.PrimaryAxis = true
			p.ManualSpeedup = true
			Expect(Encode(p)).To(Equal("#A1&T&cA=4&cB=3&pA=60&bS=2&MS&sA=3&sB=-4"))
		})

		It("never mentions a false flag", func() {
			for _, name := range ListPresets() {
				p, _ := GetPreset(name)
				entries := strings.Split(strings.TrimPrefix(Encode(p), Marker), Separator)
				for _, f := range Fields() {
					if f.Kind != KindBool || f.Get(p) {
						continue
					}
					for _, e := range entries {
						code, _, _ := strings.Cut(e, "=")
						Expect(code).NotTo(Equal(f.Code), "preset %s", name)
					}
				}
			}
		})
	})

	Describe("round trip", func() {
		It("reproduces every preset", func() {
			for _, name := range ListPresets() {
				p, _ := GetPreset(name)
				Expect(Decode(Encode(p))).To(Equal(p), "preset %s", name)
			}
		})

		It("reproduces every single flag", func() {
			for _, f := range Fields() {
				if f.Kind != KindBool {
					continue
				}
				p := f.Toggle(DefaultParams())
				Expect(f.Get(p)).To(BeTrue())
				Expect(Decode(Encode(p))).To(Equal(p), "flag %s", f.Code)
			}
		})

		It("reproduces awkward floats exactly", func() {
			p := DefaultParams()
			p.PercentageA = 100.0 / 3
			p.BaseSpeed = 0.1 + 0.2
			p.SpeedupA = -1e-9
			p.SpeedupB = 12345.678901234
			Expect(Decode(Encode(p))).To(Equal(p))
		})

		It("reproduces zero corner counts", func() {
			p := DefaultParams()
			p.CornersA = 0
			Expect(Decode(Encode(p))).To(Equal(p))
		})
	})

	Describe("Fields", func() {
		It("covers every code of the table once", func() {
			seen := map[string]bool{}
			for _, f := range Fields() {
				Expect(seen).NotTo(HaveKey(f.Code))
				seen[f.Code] = true
			}
			Expect(seen).To(HaveLen(20))
		})

		It("finds flags by code", func() {
			f, ok := FlagField("E2B")
			Expect(ok).To(BeTrue())
			Expect(f.Get(f.Toggle(Params{}))).To(BeTrue())

			_, ok = FlagField("cA")
			Expect(ok).To(BeFalse())
		})

		It("sets numeric fields with the decoding rules", func() {
			f, ok := LookupField("pA")
			Expect(ok).To(BeTrue())

			p, ok := f.Set(DefaultParams(), "25")
			Expect(ok).To(BeTrue())
			Expect(p.PercentageA).To(Equal(25.0))

			q, ok := f.Set(p, "150")
			Expect(ok).To(BeFalse())
			Expect(q).To(Equal(p))

			c, _ := LookupField("cB")
			_, ok = c.Set(p, "2.5")
			Expect(ok).To(BeFalse())

			t, _ := LookupField("T")
			_, ok = t.Set(p, "1")
			Expect(ok).To(BeFalse())

			_, ok = LookupField("zz")
			Expect(ok).To(BeFalse())
		})

		It("accepts only plain decimal numbers", func() {
			for _, raw := range []string{"1_000", "0x10", "0x1p3", "Inf", "nan", "1,5"} {
				p := Decode("#bS=" + raw)
				Expect(p.BaseSpeed).To(Equal(DefaultBaseSpeed), raw)
			}
			Expect(Decode("#bS=-2.5e1").BaseSpeed).To(Equal(-25.0))
			Expect(Decode("#cA=1e1").CornersA).To(Equal(10))
		})
	})
})
