package softgpu

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/render"
)

// Varying slots carried from the vertex to the fragment stage.
const (
	vPosX = iota // world position, or the skybox lookup direction
	vPosY
	vPosZ
	vNrmX
	vNrmY
	vNrmZ
	vU
	vV
	vHeight
	numVarying
)

type varyings [numVarying]float32

func (v *varyings) pos() mgl32.Vec3    { return mgl32.Vec3{v[vPosX], v[vPosY], v[vPosZ]} }
func (v *varyings) normal() mgl32.Vec3 { return mgl32.Vec3{v[vNrmX], v[vNrmY], v[vNrmZ]} }

// vertex is a vertex-stage output.
type vertex struct {
	clip mgl32.Vec4
	v    varyings
}

// fragmentFunc shades one fragment. clipW is the interpolated clip-space w.
type fragmentFunc func(v *varyings, clipW float32) mgl32.Vec4

// nearEpsilon keeps clipped vertices strictly in front of the eye.
const nearEpsilon = 1e-6

// drawTriangle clips a clip-space triangle against the near plane and
// rasterizes what remains.
func (d *Device) drawTriangle(a, b, c vertex, frag fragmentFunc) {
	in := [3]vertex{a, b, c}
	var poly [4]vertex
	n := 0
	for i := 0; i < 3; i++ {
		p, q := in[i], in[(i+1)%3]
		dp, dq := p.clip[2]+p.clip[3], q.clip[2]+q.clip[3]
		if dp >= 0 {
			poly[n] = p
			n++
		}
		if (dp >= 0) != (dq >= 0) {
			poly[n] = lerpVertex(p, q, dp/(dp-dq))
			n++
		}
	}
	for i := 1; i+1 < n; i++ {
		d.rasterize(poly[0], poly[i], poly[i+1], frag)
	}
}

func lerpVertex(p, q vertex, t float32) vertex {
	var out vertex
	out.clip = p.clip.Add(q.clip.Sub(p.clip).Mul(t))
	for i := range out.v {
		out.v[i] = p.v[i] + (q.v[i]-p.v[i])*t
	}
	return out
}

type screenVertex struct {
	x, y, z float32 // window x/y, NDC z
	invW    float32
}

func (d *Device) toScreen(v vertex) (screenVertex, bool) {
	w := v.clip[3]
	if w <= nearEpsilon {
		return screenVertex{}, false
	}
	inv := 1 / w
	return screenVertex{
		x:    (v.clip[0]*inv + 1) * 0.5 * float32(d.width),
		y:    (1 - v.clip[1]*inv) * 0.5 * float32(d.height),
		z:    v.clip[2] / w,
		invW: inv,
	}, true
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize fills one triangle with perspective-correct varyings, the depth
// test, counter-clockwise front faces and source-alpha blending.
func (d *Device) rasterize(a, b, c vertex, frag fragmentFunc) {
	sa, ok1 := d.toScreen(a)
	sb, ok2 := d.toScreen(b)
	sc, ok3 := d.toScreen(c)
	if !ok1 || !ok2 || !ok3 {
		return
	}

	area := edge(sa.x, sa.y, sb.x, sb.y, sc.x, sc.y)
	if area == 0 || math.IsNaN(float64(area)) {
		return
	}
	// Window y grows downward, so counter-clockwise in NDC has negative area here.
	if d.cull && area > 0 {
		return
	}

	minX := max(0, int(math.Floor(float64(min(sa.x, sb.x, sc.x)))))
	maxX := min(d.width-1, int(math.Ceil(float64(max(sa.x, sb.x, sc.x)))))
	minY := max(0, int(math.Floor(float64(min(sa.y, sb.y, sc.y)))))
	maxY := min(d.height-1, int(math.Ceil(float64(max(sa.y, sb.y, sc.y)))))

	inv := 1 / area
	var v varyings
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			l0 := edge(sb.x, sb.y, sc.x, sc.y, px, py) * inv
			l1 := edge(sc.x, sc.y, sa.x, sa.y, px, py) * inv
			l2 := 1 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			// Anchored on a so a constant-depth triangle (the skybox at z = w) stays exact.
			z := sa.z + l1*(sb.z-sa.z) + l2*(sc.z-sa.z)
			depth := max(z*0.5+0.5, 0)
			i := y*d.width + x
			if !d.depthPass(depth, d.depth[i]) {
				continue
			}

			q0, q1, q2 := l0*sa.invW, l1*sb.invW, l2*sc.invW
			s := q0 + q1 + q2
			q0, q1, q2 = q0/s, q1/s, q2/s
			for k := range v {
				v[k] = q0*a.v[k] + q1*b.v[k] + q2*c.v[k]
			}

			col := frag(&v, 1/s)
			alpha := clamp01(col[3])
			d.color[i] = col.Vec3().Mul(alpha).Add(d.color[i].Mul(1 - alpha))
			d.depth[i] = depth
		}
	}
}

func (d *Device) depthPass(z, stored float32) bool {
	if z > 1 {
		return false
	}
	if d.depthFunc == render.DepthLessEqual {
		return z <= stored
	}
	return z < stored
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
