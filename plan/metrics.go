package plan

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RecommendedSetback is the advisory minimum clearance around the building,
// in drawing units.
const RecommendedSetback = 1.5

// ComputeMetrics measures every reconstructed room polygon and aggregates the
// totals. Room ids are the 1-based positions of the polygons in the input
// order. The long/short wall lengths are bounding-box approximations
// (2 x width and 2 x height), a deliberate simplification of wall tracing
// rather than a true wall trace.
//
// No input aborts this stage: degenerate geometry was filtered upstream, and a
// failing carpet offset degrades to the linear approximation inside
// CarpetArea. The result always carries the setback advisory note, phrased in
// the configured unit label.
func ComputeMetrics(polys []orb.Polygon, wallThickness float64, units string) AggregateResult {
	result := AggregateResult{
		Units:         units,
		WallThickness: wallThickness,
		Rooms:         make([]Room, 0, len(polys)),
	}

	for i, poly := range polys {
		area := planar.Area(poly)
		perimeter := planar.Length(poly)
		carpet := CarpetArea(poly, wallThickness)
		bound := poly.Bound()

		room := Room{
			ID:              i + 1,
			Area:            area,
			CarpetArea:      carpet.Area,
			Perimeter:       perimeter,
			LongWallLength:  2 * (bound.Max[0] - bound.Min[0]),
			ShortWallLength: 2 * (bound.Max[1] - bound.Min[1]),
			Bounds:          boundsOf(bound),
			CarpetMethod:    carpet.Method,
		}
		result.Rooms = append(result.Rooms, room)

		result.Totals.BuiltUpArea += room.Area
		result.Totals.CarpetArea += room.CarpetArea
		result.Totals.Perimeter += room.Perimeter
	}

	result.Notes = append(result.Notes, fmt.Sprintf(
		"Recommended minimum setback/margin around building: %g %s (adjust per local rules).",
		RecommendedSetback, units))

	return result
}
