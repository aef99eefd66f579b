package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned for geometry requests that cannot produce a mesh.
var ErrInvalidParameter = errors.New("invalid parameter")

// Interleaved vertex layout shared by every lit mesh:
// location 0 = position (3f), 1 = normal (3f), 2 = UV (2f).
const (
	FloatsPerVertex = 8
	VertexStride    = FloatsPerVertex * 4
	PositionOffset  = 0
	NormalOffset    = 12
	UVOffset        = 24
)

// Grid is a subdivided flat mesh in the XZ plane, centred on the origin.
// The buffer is generated once and never mutated; the surface stage displaces it.
type Grid struct {
	Width, Depth float32
	Subdivisions int
	Vertices     []float32
}

// VertexCount returns the number of vertices in the grid buffer.
func (g Grid) VertexCount() int { return len(g.Vertices) / FloatsPerVertex }

// GenerateGrid builds subdivisions² quads as two counter-clockwise (seen from +Y)
// triangles each. Every vertex carries the up normal and a UV tiled once over the grid.
func GenerateGrid(width, depth float32, subdivisions int) (Grid, error) {
	if subdivisions <= 0 {
		return Grid{}, fmt.Errorf("grid subdivisions %d: %w", subdivisions, ErrInvalidParameter)
	}
	if !(width > 0) || !(depth > 0) {
		return Grid{}, fmt.Errorf("grid size %gx%g: %w", width, depth, ErrInvalidParameter)
	}

	n := subdivisions
	stepX := width / float32(n)
	stepZ := depth / float32(n)
	data := make([]float32, 0, n*n*6*FloatsPerVertex)
	put := func(x, z, u, v float32) {
		data = append(data, x, 0, z, 0, 1, 0, u, v)
	}

	// Shared edges are computed by one expression so neighbouring quads meet exactly;
	// the last edge lands on the far border.
	edge := func(i int, size, step float32) float32 {
		if i == n {
			return size / 2
		}
		return -size/2 + float32(i)*step
	}

	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			x0, x1 := edge(ix, width, stepX), edge(ix+1, width, stepX)
			z0, z1 := edge(iz, depth, stepZ), edge(iz+1, depth, stepZ)
			u0, v0 := float32(ix)/float32(n), float32(iz)/float32(n)
			u1, v1 := float32(ix+1)/float32(n), float32(iz+1)/float32(n)

			put(x0, z0, u0, v0)
			put(x0, z1, u0, v1)
			put(x1, z0, u1, v0)

			put(x1, z0, u1, v0)
			put(x0, z1, u0, v1)
			put(x1, z1, u1, v1)
		}
	}
	return Grid{Width: width, Depth: depth, Subdivisions: n, Vertices: data}, nil
}

// Scene grids.
const (
	OceanSize         = 800
	OceanSubdivisions = 300
	SailWidth         = 3.0
	SailHeight        = 2.5
	SailSubdivisions  = 20
)

// CubeVertices is a unit cube centred on the origin, 6 faces x 2 triangles,
// with a constant normal per face.
var CubeVertices = []float32{
	// front
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	// back
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	// left
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	// right
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	// top
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	// bottom
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
}

// SkyboxVertices is an inward-facing cube of half-size 1, positions only (3 floats per vertex).
var SkyboxVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyboxFloatsPerVertex is the position-only stride of SkyboxVertices.
const SkyboxFloatsPerVertex = 3

// BirdVertices is a flat gull: two wing triangles sharing the body apex at the origin.
var BirdVertices = []float32{
	0.0, 0.0, 0.0, 0, 1, 0, 0, 0,
	-0.5, 0.0, 0.5, 0, 1, 0, 0, 0,
	-0.2, 0.0, -0.2, 0, 1, 0, 0, 0,
	0.0, 0.0, 0.0, 0, 1, 0, 0, 0,
	0.5, 0.0, 0.5, 0, 1, 0, 0, 0,
	0.2, 0.0, -0.2, 0, 1, 0, 0, 0,
}
