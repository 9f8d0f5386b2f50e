package plan

import (
	"math"

	"github.com/paulmach/orb"
)

// CarpetMethod identifies how a room's carpet area was obtained.
type CarpetMethod string

const (
	// CarpetOffset means the inward geometric offset succeeded.
	CarpetOffset CarpetMethod = "offset"

	// CarpetApprox means the offset collapsed or failed and the linear
	// approximation max(0, area - perimeter*thickness) was used instead.
	CarpetApprox CarpetMethod = "approximation"
)

// CarpetResult carries a carpet area together with the method that produced
// it. The fallback is an expected branch of the contract, not an error.
type CarpetResult struct {
	Area   float64      `json:"area"`
	Method CarpetMethod `json:"method"`
}

// CarpetArea computes the usable floor area of a room polygon after
// subtracting the wall thickness. The polygon's outer ring is offset inward by
// thickness; when the offset collapses (room too small relative to the walls)
// or cannot be computed, the linear approximation takes over and the result is
// clamped to zero.
func CarpetArea(poly orb.Polygon, thickness float64) CarpetResult {
	if len(poly) == 0 {
		return CarpetResult{Area: 0, Method: CarpetApprox}
	}
	ring := poly[0]
	area := math.Abs(signedArea(ring))
	perimeter := ringLength(ring)

	if inset, ok := insetRing(ring, thickness); ok {
		return CarpetResult{Area: signedArea(inset), Method: CarpetOffset}
	}

	return CarpetResult{
		Area:   math.Max(0, area-perimeter*thickness),
		Method: CarpetApprox,
	}
}

// insetRing offsets a closed ring inward by d using mitered edge offsets:
// every edge is shifted toward the interior and consecutive offset edges are
// re-intersected to form the new vertices. The bool reports whether the result
// is a valid interior ring; callers fall back to the linear approximation when
// it is not.
func insetRing(ring orb.Ring, d float64) (orb.Ring, bool) {
	if d < 0 {
		return nil, false
	}

	open := openVertices(ring)
	n := len(open)
	if n < 3 {
		return nil, false
	}

	// Work on a counter-clockwise copy so the interior is always to the left.
	originalArea := signedArea(closeRing(open))
	if originalArea < 0 {
		originalArea = -originalArea
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			open[i], open[j] = open[j], open[i]
		}
	}

	if d == 0 {
		return closeRing(open), true
	}

	// Inward (left) normal per edge.
	normals := make([]orb.Point, n)
	for i := 0; i < n; i++ {
		p, q := open[i], open[(i+1)%n]
		dx, dy := q[0]-p[0], q[1]-p[1]
		length := math.Hypot(dx, dy)
		if length <= geomEps {
			return nil, false
		}
		normals[i] = orb.Point{-dy / length * d, dx / length * d}
	}

	inset := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n

		// Offset lines of the edges meeting at vertex i.
		a0 := orb.Point{open[prev][0] + normals[prev][0], open[prev][1] + normals[prev][1]}
		a1 := orb.Point{open[i][0] + normals[prev][0], open[i][1] + normals[prev][1]}
		b0 := orb.Point{open[i][0] + normals[i][0], open[i][1] + normals[i][1]}
		b1 := orb.Point{open[(i+1)%n][0] + normals[i][0], open[(i+1)%n][1] + normals[i][1]}

		v, ok := lineIntersection(a0, a1, b0, b1)
		if !ok {
			// Collinear neighbors share the same offset, use it directly.
			v = b0
		}
		inset = append(inset, v)
	}
	inset = append(inset, inset[0])

	// The offset collapsed if the ring flipped, grew, or self-intersects.
	insetArea := signedArea(inset)
	if insetArea <= NoiseAreaThreshold || insetArea >= originalArea {
		return nil, false
	}
	if !isSimpleRing(inset) {
		return nil, false
	}

	return inset, true
}

// closeRing copies the open vertex list into a closed ring.
func closeRing(open []orb.Point) orb.Ring {
	out := make(orb.Ring, 0, len(open)+1)
	out = append(out, open...)
	out = append(out, open[0])
	return out
}

// openVertices returns the ring's vertices without the closing point and
// without consecutive duplicates.
func openVertices(ring orb.Ring) []orb.Point {
	pts := []orb.Point(ring)
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}

	var open []orb.Point
	for _, p := range pts {
		if len(open) > 0 {
			q := open[len(open)-1]
			if math.Hypot(p[0]-q[0], p[1]-q[1]) <= snapTolerance {
				continue
			}
		}
		open = append(open, p)
	}
	return open
}

// lineIntersection intersects the infinite lines through (a0,a1) and (b0,b1).
func lineIntersection(a0, a1, b0, b1 orb.Point) (orb.Point, bool) {
	r := orb.Point{a1[0] - a0[0], a1[1] - a0[1]}
	s := orb.Point{b1[0] - b0[0], b1[1] - b0[1]}
	denom := cross2(r, s)
	if math.Abs(denom) <= geomEps {
		return orb.Point{}, false
	}
	d := orb.Point{b0[0] - a0[0], b0[1] - a0[1]}
	t := cross2(d, s) / denom
	return orb.Point{a0[0] + t*r[0], a0[1] + t*r[1]}, true
}

// isSimpleRing reports whether no two non-adjacent edges of the closed ring
// properly intersect.
func isSimpleRing(ring orb.Ring) bool {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (they share a vertex by construction).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsCross(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return false
			}
		}
	}
	return true
}

// segmentsCross reports a proper interior crossing between segments (a0,a1)
// and (b0,b1).
func segmentsCross(a0, a1, b0, b1 orb.Point) bool {
	r := orb.Point{a1[0] - a0[0], a1[1] - a0[1]}
	s := orb.Point{b1[0] - b0[0], b1[1] - b0[1]}
	denom := cross2(r, s)
	if math.Abs(denom) <= geomEps {
		return false
	}
	d := orb.Point{b0[0] - a0[0], b0[1] - a0[1]}
	t := cross2(d, s) / denom
	u := cross2(d, r) / denom
	return t > geomEps && t < 1-geomEps && u > geomEps && u < 1-geomEps
}

// ringLength is the perimeter of a closed ring.
func ringLength(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += math.Hypot(ring[i+1][0]-ring[i][0], ring[i+1][1]-ring[i][1])
	}
	return sum
}
