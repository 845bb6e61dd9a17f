package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func vec3At(data []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
}

func vec2At(data []float32, i int) mgl32.Vec2 {
	return mgl32.Vec2{data[i*2], data[i*2+1]}
}

// triangles calls fn for every triangle, using indices when present.
func triangles(vertexCount int, indices []uint32, fn func(a, b, c int)) {
	if len(indices) > 0 {
		for i := 0; i+2 < len(indices); i += 3 {
			fn(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
		return
	}
	for i := 0; i+2 < vertexCount; i += 3 {
		fn(i, i+1, i+2)
	}
}

// GeneratePlanarUVs projects positions onto the plane spanned by the two largest extents of
// their bounding box and normalizes the result into [0, 1].
//
// Parameters:
//   - positions: flat xyz triples
//
// Returns:
//   - []float32: flat uv pairs, one per position
func GeneratePlanarUVs(positions []float32) []float32 {
	n := len(positions) / 3
	uvs := make([]float32, n*2)
	if n == 0 {
		return uvs
	}

	lo := vec3At(positions, 0)
	hi := lo
	for i := 1; i < n; i++ {
		p := vec3At(positions, i)
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	size := hi.Sub(lo)

	// drop the axis with the smallest extent
	u, v := 0, 1
	switch {
	case size[0] <= size[1] && size[0] <= size[2]:
		u, v = 2, 1
	case size[1] <= size[0] && size[1] <= size[2]:
		u, v = 0, 2
	}

	for i := 0; i < n; i++ {
		p := vec3At(positions, i)
		if size[u] > 0 {
			uvs[i*2] = (p[u] - lo[u]) / size[u]
		}
		if size[v] > 0 {
			uvs[i*2+1] = (p[v] - lo[v]) / size[v]
		}
	}
	return uvs
}

// ComputeVertexNormals derives normals from triangle winding. Indexed geometry gets smooth
// normals by summing the unnormalized face normals of every triangle sharing a vertex, which
// weights each face by its area. Non-indexed geometry gets flat per-face normals.
//
// Parameters:
//   - positions: flat xyz triples
//   - indices: optional triangle indices
//
// Returns:
//   - []float32: flat xyz normals, one per position
func ComputeVertexNormals(positions []float32, indices []uint32) []float32 {
	n := len(positions) / 3
	acc := make([]mgl32.Vec3, n)

	triangles(n, indices, func(a, b, c int) {
		pa, pb, pc := vec3At(positions, a), vec3At(positions, b), vec3At(positions, c)
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	})

	normals := make([]float32, n*3)
	for i, v := range acc {
		if l := v.Len(); l > 0 {
			v = v.Mul(1 / l)
		} else {
			v = mgl32.Vec3{0, 1, 0}
		}
		copy(normals[i*3:], v[:])
	}
	return normals
}

// GenerateTangents computes per-vertex tangents from per-triangle UV gradients. Tangents are
// Gram-Schmidt orthogonalized against the normal; w carries the bitangent handedness.
//
// Parameters:
//   - positions: flat xyz triples
//   - normals: flat xyz triples, one per position
//   - uvs: flat uv pairs, one per position
//   - indices: optional triangle indices
//
// Returns:
//   - []float32: flat xyzw tangents, one per position
func GenerateTangents(positions, normals, uvs []float32, indices []uint32) []float32 {
	n := len(positions) / 3
	tan := make([]mgl32.Vec3, n)
	bitan := make([]mgl32.Vec3, n)

	if len(uvs) >= n*2 {
		triangles(n, indices, func(a, b, c int) {
			pa, pb, pc := vec3At(positions, a), vec3At(positions, b), vec3At(positions, c)
			ta, tb, tc := vec2At(uvs, a), vec2At(uvs, b), vec2At(uvs, c)
			e1, e2 := pb.Sub(pa), pc.Sub(pa)
			du1, dv1 := tb[0]-ta[0], tb[1]-ta[1]
			du2, dv2 := tc[0]-ta[0], tc[1]-ta[1]
			det := du1*dv2 - du2*dv1
			if math32.Abs(det) < 1e-12 {
				return
			}
			r := 1 / det
			t := e1.Mul(dv2).Sub(e2.Mul(dv1)).Mul(r)
			bt := e2.Mul(du1).Sub(e1.Mul(du2)).Mul(r)
			for _, i := range [3]int{a, b, c} {
				tan[i] = tan[i].Add(t)
				bitan[i] = bitan[i].Add(bt)
			}
		})
	}

	out := make([]float32, n*4)
	for i := 0; i < n; i++ {
		nrm := mgl32.Vec3{0, 1, 0}
		if len(normals) >= i*3+3 {
			nrm = vec3At(normals, i)
		}
		t := tan[i].Sub(nrm.Mul(nrm.Dot(tan[i])))
		if t.Len() < 1e-8 {
			// no usable UV gradient, pick any tangent perpendicular to the normal
			t = mgl32.Vec3{1, 0, 0}
			if math32.Abs(nrm[0]) > 0.9 {
				t = mgl32.Vec3{0, 0, 1}
			}
			t = t.Sub(nrm.Mul(nrm.Dot(t)))
		}
		t = t.Normalize()
		w := float32(1)
		if nrm.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = t[0], t[1], t[2], w
	}
	return out
}
