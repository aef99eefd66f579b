package scene

import "math"

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep matches the GLSL builtin: Hermite interpolation of x between e0 and e1.
func Smoothstep(e0, e1, x float32) float32 {
	t := clampF((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix matches the GLSL builtin for scalars.
func Mix(a, b, t float32) float32 { return a + (b-a)*t }

func sin32(v float64) float32 { return float32(math.Sin(v)) }
func cos32(v float64) float32 { return float32(math.Cos(v)) }

func radians(deg float32) float64 { return float64(deg) * math.Pi / 180 }

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	seed = splitmix64(seed)
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

// RangeF returns a value in [min, max).
func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// RangeF32 returns a float32 in [min, max). Rounding toward max is pulled back below it.
func (r *Rand) RangeF32(min, max float32) float32 {
	v := float32(r.RangeF(float64(min), float64(max)))
	if v >= max && max > min {
		v = math.Nextafter32(max, min)
	}
	return v
}
