package plan

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// NoiseAreaThreshold is the minimum face area (in squared drawing units) for a
// reconstructed loop to count as a room. Smaller faces are near-coincident or
// degenerate loops, not real rooms, and are silently discarded.
const NoiseAreaThreshold = 1e-6

// snapTolerance merges nearly coincident points into one arena node during
// noding.
const snapTolerance = 1e-7

// geomEps guards the parametric intersection tests.
const geomEps = 1e-9

// Polygonize merges the segments into a fully noded planar arrangement and
// extracts every minimal bounded face as a single-ring polygon.
//
// Segments are split at every mutual intersection (crossings, T-junctions and
// collinear overlaps), near-duplicate endpoints are merged within
// snapTolerance, and dangling edges are pruned before face extraction, so they
// contribute no face. Faces at or below NoiseAreaThreshold are dropped.
//
// The returned rings are simple, counter-clockwise, closed (first point equals
// last) and ordered deterministically, so repeated runs over the same input
// produce identical output. An empty segment collection returns nil.
func Polygonize(segs []Segment) []orb.Polygon {
	if len(segs) == 0 {
		return nil
	}

	points, edges := nodeSegments(segs)
	edges = pruneDangles(len(points), edges)
	if len(edges) == 0 {
		return nil
	}

	faces := extractFaces(points, edges)

	sort.SliceStable(faces, func(i, j int) bool {
		a, b := faces[i][0], faces[j][0]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return signedArea(faces[i]) > signedArea(faces[j])
	})

	polys := make([]orb.Polygon, len(faces))
	for i, ring := range faces {
		polys[i] = orb.Polygon{ring}
	}
	return polys
}

// pointArena deduplicates points by spatial tolerance and hands out stable
// integer ids, so the arrangement graph can be indexed by point id instead of
// chasing pointers.
type pointArena struct {
	cell   float64
	points []orb.Point
	index  map[[2]int64][]int
}

func newPointArena(tolerance float64) *pointArena {
	return &pointArena{cell: tolerance, index: make(map[[2]int64][]int)}
}

// id returns the arena id for p, merging it with an existing point when one
// lies within the tolerance. Lookup scans the 3x3 cell neighborhood so points
// straddling a cell boundary still merge.
func (a *pointArena) id(p orb.Point) int {
	cx := int64(math.Floor(p[0] / a.cell))
	cy := int64(math.Floor(p[1] / a.cell))

	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, id := range a.index[[2]int64{cx + dx, cy + dy}] {
				q := a.points[id]
				if math.Hypot(p[0]-q[0], p[1]-q[1]) <= a.cell {
					return id
				}
			}
		}
	}

	id := len(a.points)
	a.points = append(a.points, p)
	key := [2]int64{cx, cy}
	a.index[key] = append(a.index[key], id)
	return id
}

func cross2(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// cutParams returns the split parameters that segment b induces on a (ta) and
// a induces on b (tb). A proper crossing yields one parameter on each side; a
// collinear overlap yields a cut at every endpoint of one segment that falls
// strictly inside the other. Parallel disjoint segments yield nothing.
func cutParams(a, b Segment) (ta, tb []float64) {
	r := orb.Point{a.B[0] - a.A[0], a.B[1] - a.A[1]}
	s := orb.Point{b.B[0] - b.A[0], b.B[1] - b.A[1]}
	d := orb.Point{b.A[0] - a.A[0], b.A[1] - a.A[1]}

	denom := cross2(r, s)
	if math.Abs(denom) > geomEps {
		t := cross2(d, s) / denom
		u := cross2(d, r) / denom
		if t >= -geomEps && t <= 1+geomEps && u >= -geomEps && u <= 1+geomEps {
			ta = append(ta, clamp01(t))
			tb = append(tb, clamp01(u))
		}
		return ta, tb
	}

	// Parallel segments: only collinear ones can interact.
	if math.Abs(cross2(d, r)) > geomEps {
		return nil, nil
	}

	if rr := r[0]*r[0] + r[1]*r[1]; rr > 0 {
		for _, p := range [2]orb.Point{b.A, b.B} {
			t := ((p[0]-a.A[0])*r[0] + (p[1]-a.A[1])*r[1]) / rr
			if t > geomEps && t < 1-geomEps {
				ta = append(ta, t)
			}
		}
	}
	if ss := s[0]*s[0] + s[1]*s[1]; ss > 0 {
		for _, p := range [2]orb.Point{a.A, a.B} {
			u := ((p[0]-b.A[0])*s[0] + (p[1]-b.A[1])*s[1]) / ss
			if u > geomEps && u < 1-geomEps {
				tb = append(tb, u)
			}
		}
	}
	return ta, tb
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// nodeSegments splits every segment at its intersections with all others and
// returns the deduplicated point arena plus the unique undirected sub-edges.
// Zero-length sub-edges (collapsed by point merging) and duplicate edges from
// overlapping input segments are dropped.
func nodeSegments(segs []Segment) ([]orb.Point, [][2]int) {
	cuts := make([][]float64, len(segs))
	for i := range segs {
		cuts[i] = []float64{0, 1}
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			ta, tb := cutParams(segs[i], segs[j])
			cuts[i] = append(cuts[i], ta...)
			cuts[j] = append(cuts[j], tb...)
		}
	}

	arena := newPointArena(snapTolerance)
	seen := make(map[[2]int]bool)
	var edges [][2]int

	for i, s := range segs {
		ts := cuts[i]
		sort.Float64s(ts)

		prev := arena.id(s.A)
		for _, t := range ts {
			p := orb.Point{
				s.A[0] + t*(s.B[0]-s.A[0]),
				s.A[1] + t*(s.B[1]-s.A[1]),
			}
			id := arena.id(p)
			if id == prev {
				continue
			}
			e := [2]int{min(prev, id), max(prev, id)}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
			prev = id
		}
	}

	return arena.points, edges
}

// pruneDangles iteratively removes edges incident to a degree-1 vertex. Open
// chains cannot bound a face, and removing them keeps the face walk on simple
// rings.
func pruneDangles(pointCount int, edges [][2]int) [][2]int {
	degree := make([]int, pointCount)
	for _, e := range edges {
		degree[e[0]]++
		degree[e[1]]++
	}

	alive := make([]bool, len(edges))
	for i := range alive {
		alive[i] = true
	}

	for changed := true; changed; {
		changed = false
		for k, e := range edges {
			if !alive[k] {
				continue
			}
			if degree[e[0]] < 2 || degree[e[1]] < 2 {
				alive[k] = false
				degree[e[0]]--
				degree[e[1]]--
				changed = true
			}
		}
	}

	var kept [][2]int
	for k, e := range edges {
		if alive[k] {
			kept = append(kept, e)
		}
	}
	return kept
}

// extractFaces decomposes the noded arrangement into face cycles. Every
// undirected edge becomes two half-edges; at each vertex the outgoing
// half-edges are ordered by angle, and a face walk always continues with the
// clockwise neighbor of the twin edge in that ordering. Under that rule each
// bounded face is traced exactly once counter-clockwise and the unbounded
// face of each component clockwise, so faces with positive area above the
// noise threshold are exactly the rooms.
func extractFaces(points []orb.Point, edges [][2]int) []orb.Ring {
	type halfEdge struct{ from, to int }

	hes := make([]halfEdge, 0, len(edges)*2)
	for _, e := range edges {
		// Twin pairs: half-edge 2k and 2k+1 reverse each other.
		hes = append(hes, halfEdge{e[0], e[1]}, halfEdge{e[1], e[0]})
	}

	out := make(map[int][]int, len(points))
	for i, he := range hes {
		out[he.from] = append(out[he.from], i)
	}
	angle := func(h int) float64 {
		from := points[hes[h].from]
		to := points[hes[h].to]
		return math.Atan2(to[1]-from[1], to[0]-from[0])
	}
	for v := range out {
		fan := out[v]
		sort.Slice(fan, func(i, j int) bool { return angle(fan[i]) < angle(fan[j]) })
	}

	pos := make([]int, len(hes))
	for _, fan := range out {
		for idx, h := range fan {
			pos[h] = idx
		}
	}

	next := make([]int, len(hes))
	for i := range hes {
		twin := i ^ 1
		fan := out[hes[i].to]
		next[i] = fan[(pos[twin]-1+len(fan))%len(fan)]
	}

	visited := make([]bool, len(hes))
	var faces []orb.Ring

	for i := range hes {
		if visited[i] {
			continue
		}
		var ring orb.Ring
		for h := i; !visited[h]; h = next[h] {
			visited[h] = true
			ring = append(ring, points[hes[h].from])
		}
		ring = append(ring, ring[0])

		if signedArea(ring) > NoiseAreaThreshold {
			faces = append(faces, normalizeRing(ring))
		}
	}

	return faces
}

// signedArea is the shoelace area of a closed ring: positive for
// counter-clockwise orientation.
func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// normalizeRing rotates a closed ring so it starts at its lexicographically
// smallest vertex. Output identity then depends only on the geometry, not on
// the traversal entry point.
func normalizeRing(ring orb.Ring) orb.Ring {
	open := ring[:len(ring)-1]

	start := 0
	for i, p := range open {
		q := open[start]
		if p[0] < q[0] || (p[0] == q[0] && p[1] < q[1]) {
			start = i
		}
	}

	normalized := make(orb.Ring, 0, len(open)+1)
	normalized = append(normalized, open[start:]...)
	normalized = append(normalized, open[:start]...)
	normalized = append(normalized, normalized[0])
	return normalized
}
