package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaveHeightKnownValues(t *testing.T) {
	assert.InDelta(t, 0.3, WaveHeight(0, 0, 0), 1e-6)

	x, z, tm := 2.0, -3.0, 1.25
	want := 0.5*math.Sin(0.5*x+0.5*tm) +
		0.3*math.Cos(0.3*z+0.1*x+0.8*tm) +
		0.1*math.Sin(0.8*z+1.5*tm)
	assert.InDelta(t, want, WaveHeight(float32(x), float32(z), float32(tm)), 1e-6)
}

func TestWaveHeightBounded(t *testing.T) {
	for x := float32(-50); x <= 50; x += 3.7 {
		for z := float32(-50); z <= 50; z += 4.1 {
			h := WaveHeight(x, z, x*0.3+z)
			assert.LessOrEqual(t, math.Abs(float64(h)), 0.9+1e-6)
		}
	}
}

func TestWaveHeightDeterministic(t *testing.T) {
	assert.Equal(t, WaveHeight(1.5, 7.25, 3.5), WaveHeight(1.5, 7.25, 3.5))
}

func TestWaveHeightPeriodic(t *testing.T) {
	for _, tm := range []float32{0, 0.7, 12.3} {
		a := WaveHeight(3, -4, tm)
		b := WaveHeight(3, -4, tm+float32(WavePeriod))
		assert.InDelta(t, a, b, 1e-4, "t=%v", tm)
	}
}

func TestScrolledHeight(t *testing.T) {
	assert.Equal(t, WaveHeight(2, 5+4*OceanSpeedZ, 4), ScrolledHeight(2, 5, 4, OceanSpeedZ))
	assert.Equal(t, WaveHeight(2, 5, 4), ScrolledHeight(2, 5, 4, SailSpeedZ))
}

func TestWaveNormal(t *testing.T) {
	n := WaveNormal(0)
	assert.InDelta(t, 1, n[1], 1e-6)
	n = WaveNormal(0.8)
	assert.InDelta(t, 1, n.Len(), 1e-6)
	assert.Greater(t, n[0], float32(0))
	assert.Zero(t, n[2])
}

func TestWaveGLSL(t *testing.T) {
	src := WaveGLSL()
	assert.Contains(t, src, "float calculateWave(float x, float z, float time) {")
	assert.Contains(t, src, "wave += sin(x * 0.5 + time * 0.5) * 0.5;")
	assert.Contains(t, src, "wave += cos(x * 0.1 + z * 0.3 + time * 0.8) * 0.3;")
	assert.Contains(t, src, "wave += sin(z * 0.8 + time * 1.5) * 0.1;")
	assert.Equal(t, "2.0", glslFloat(2))
}
