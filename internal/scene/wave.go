package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// waveTerm is one sinusoid of the ocean height field:
// amp * f(freqX*x + freqZ*z + speed*t), f = sin or cos.
type waveTerm struct {
	amp, freqX, freqZ, speed float64
	cos                      bool
}

// waveTerms is shared by the CPU evaluation and the generated GLSL.
var waveTerms = [...]waveTerm{
	{amp: 0.5, freqX: 0.5, speed: 0.5},
	{amp: 0.3, freqX: 0.1, freqZ: 0.3, speed: 0.8, cos: true},
	{amp: 0.1, freqZ: 0.8, speed: 1.5},
}

// WavePeriod is the composite time period of all wave terms (20π).
const WavePeriod = 20 * math.Pi

// Ocean and sail animation parameters.
const (
	OceanSpeedZ   = 3.0
	SailSpeedZ    = 0.0
	SailTimeScale = 2.0
)

// WaveHeight is the vertical displacement of the surface at (x, z) and time t.
func WaveHeight(x, z, t float32) float32 {
	return float32(waveHeight64(float64(x), float64(z), float64(t)))
}

func waveHeight64(x, z, t float64) float64 {
	var h float64
	for _, w := range waveTerms {
		arg := w.freqX*x + w.freqZ*z + w.speed*t
		if w.cos {
			h += w.amp * math.Cos(arg)
		} else {
			h += w.amp * math.Sin(arg)
		}
	}
	return h
}

// ScrolledHeight applies the current scroll (t*speedZ) to z before sampling,
// the same way the surface vertex stage does.
func ScrolledHeight(x, z, t, speedZ float32) float32 {
	return float32(waveHeight64(float64(x), float64(z)+float64(t)*float64(speedZ), float64(t)))
}

// WaveNormal is the shading normal used for water: the height is treated as a tilt along x.
// It is a plausibility approximation, not the analytic gradient.
func WaveNormal(h float32) mgl32.Vec3 {
	return mgl32.Vec3{h * 0.5, 1, 0}.Normalize()
}

// WaveGLSL returns the GLSL definition of calculateWave(x, z, time) built from
// the same term table WaveHeight uses.
func WaveGLSL() string {
	var b strings.Builder
	b.WriteString("float calculateWave(float x, float z, float time) {\n")
	b.WriteString("    float wave = 0.0;\n")
	for _, w := range waveTerms {
		fn := "sin"
		if w.cos {
			fn = "cos"
		}
		var arg []string
		if w.freqX != 0 {
			arg = append(arg, "x * "+glslFloat(w.freqX))
		}
		if w.freqZ != 0 {
			arg = append(arg, "z * "+glslFloat(w.freqZ))
		}
		arg = append(arg, "time * "+glslFloat(w.speed))
		fmt.Fprintf(&b, "    wave += %s(%s) * %s;\n", fn, strings.Join(arg, " + "), glslFloat(w.amp))
	}
	b.WriteString("    return wave;\n}\n")
	return b.String()
}

// glslFloat formats v as a GLSL float literal (always carries a decimal point).
func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
