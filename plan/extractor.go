package plan

import "github.com/paulmach/orb"

// ExtractSegments flattens drawing entities into straight-line segments.
//
// A two-point line entity yields exactly one segment. A vertex chain with
// three or more points is reduced to its edge segments; if the chain is not
// already closed, its first point is appended to force closure. Chains with
// fewer than three points cannot bound an area and are dropped. Entities with
// the wrong point count for their kind are dropped rather than failing the
// run; extraction is best-effort per entity.
func ExtractSegments(ents []Entity) []Segment {
	var segs []Segment

	for _, e := range ents {
		switch e.Kind {
		case EntityLine:
			if len(e.Points) != 2 {
				continue
			}
			segs = append(segs, Segment{A: e.Points[0], B: e.Points[1]})

		case EntityPolyline:
			if len(e.Points) < 3 {
				continue
			}
			pts := e.Points
			if !pts[0].Equal(pts[len(pts)-1]) {
				closed := make([]orb.Point, 0, len(pts)+1)
				closed = append(closed, pts...)
				closed = append(closed, pts[0])
				pts = closed
			}
			for i := 0; i+1 < len(pts); i++ {
				segs = append(segs, Segment{A: pts[i], B: pts[i+1]})
			}
		}
	}

	return segs
}
