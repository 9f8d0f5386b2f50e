package plan

import (
	"math"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func seg(ax, ay, bx, by float64) Segment {
	return Segment{A: orb.Point{ax, ay}, B: orb.Point{bx, by}}
}

// rectSegments returns the four edges of an axis-aligned rectangle.
func rectSegments(x0, y0, x1, y1 float64) []Segment {
	return []Segment{
		seg(x0, y0, x1, y0),
		seg(x1, y0, x1, y1),
		seg(x1, y1, x0, y1),
		seg(x0, y1, x0, y0),
	}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---------------------------------------------------------------------------
// Polygonize
// ---------------------------------------------------------------------------

func TestPolygonize_SingleRectangle(t *testing.T) {
	polys := Polygonize(rectSegments(0, 0, 10, 6))

	if len(polys) != 1 {
		t.Fatalf("Expected 1 polygon, got %d", len(polys))
	}

	area := planar.Area(polys[0])
	if !approxEq(area, 60) {
		t.Errorf("Area = %g, want 60", area)
	}
	perim := planar.Length(polys[0])
	if !approxEq(perim, 32) {
		t.Errorf("Perimeter = %g, want 32", perim)
	}

	ring := polys[0][0]
	if len(ring) < 4 {
		t.Fatalf("Ring has %d points, want at least 4", len(ring))
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		t.Error("Ring is not closed")
	}
	if signedArea(ring) <= 0 {
		t.Errorf("Ring winding is not counter-clockwise, signed area %g", signedArea(ring))
	}
}

func TestPolygonize_Empty(t *testing.T) {
	if polys := Polygonize(nil); len(polys) != 0 {
		t.Errorf("Expected no polygons for empty input, got %d", len(polys))
	}
}

func TestPolygonize_OpenLineWork(t *testing.T) {
	// Three sides of a rectangle never close a face.
	segs := []Segment{
		seg(0, 0, 10, 0),
		seg(10, 0, 10, 6),
		seg(10, 6, 0, 6),
	}
	if polys := Polygonize(segs); len(polys) != 0 {
		t.Errorf("Expected no polygons for open line work, got %d", len(polys))
	}
}

func TestPolygonize_DuplicateSegments(t *testing.T) {
	segs := append(rectSegments(0, 0, 10, 6), rectSegments(0, 0, 10, 6)...)

	polys := Polygonize(segs)
	if len(polys) != 1 {
		t.Fatalf("Expected duplicate edges to collapse to 1 polygon, got %d", len(polys))
	}
	if area := planar.Area(polys[0]); !approxEq(area, 60) {
		t.Errorf("Area = %g, want 60", area)
	}
}

func TestPolygonize_DividerSplitsRoom(t *testing.T) {
	// A full-height divider through the middle of a 10x6 rectangle makes two
	// 5x6 rooms. The divider overshoots both walls; the overhangs are
	// dangles and must not leak into the result.
	segs := append(rectSegments(0, 0, 10, 6), seg(5, -1, 5, 7))

	polys := Polygonize(segs)
	if len(polys) != 2 {
		t.Fatalf("Expected 2 polygons, got %d", len(polys))
	}
	for i, poly := range polys {
		if area := planar.Area(poly); !approxEq(area, 30) {
			t.Errorf("Polygon %d area = %g, want 30", i, area)
		}
	}
}

func TestPolygonize_DanglingSpur(t *testing.T) {
	// An interior stub wall that touches only one boundary closes nothing.
	segs := append(rectSegments(0, 0, 10, 6), seg(5, 3, 10, 3))

	polys := Polygonize(segs)
	if len(polys) != 1 {
		t.Fatalf("Expected spur to be pruned leaving 1 polygon, got %d", len(polys))
	}
	if area := planar.Area(polys[0]); !approxEq(area, 60) {
		t.Errorf("Area = %g, want 60", area)
	}
}

func TestPolygonize_CrossingSegmentsSplitAtIntersection(t *testing.T) {
	// Two wall runs crossing mid-span quarter the rectangle.
	segs := append(rectSegments(0, 0, 8, 4),
		seg(4, 0, 4, 4),
		seg(0, 2, 8, 2),
	)

	polys := Polygonize(segs)
	if len(polys) != 4 {
		t.Fatalf("Expected 4 polygons, got %d", len(polys))
	}
	for i, poly := range polys {
		if area := planar.Area(poly); !approxEq(area, 8) {
			t.Errorf("Polygon %d area = %g, want 8", i, area)
		}
	}
}

func TestPolygonize_AdjoiningRoomsShareWall(t *testing.T) {
	// Two rooms drawn as separate rectangles sharing the x=4 wall. The shared
	// edge dedupes to one wall and both rooms must survive as distinct faces.
	segs := append(rectSegments(0, 0, 4, 3), rectSegments(4, 0, 8, 3)...)

	polys := Polygonize(segs)
	if len(polys) != 2 {
		t.Fatalf("Expected 2 polygons, got %d", len(polys))
	}
	for i, poly := range polys {
		if area := planar.Area(poly); !approxEq(area, 12) {
			t.Errorf("Polygon %d area = %g, want 12", i, area)
		}
	}
}

func TestPolygonize_TwoDisjointRooms(t *testing.T) {
	segs := append(rectSegments(0, 0, 4, 3), rectSegments(10, 0, 14, 3)...)

	polys := Polygonize(segs)
	if len(polys) != 2 {
		t.Fatalf("Expected 2 polygons, got %d", len(polys))
	}

	// Output order is deterministic: leftmost room first.
	if polys[0][0][0][0] >= polys[1][0][0][0] {
		t.Errorf("Rooms out of order: first starts at x=%g, second at x=%g",
			polys[0][0][0][0], polys[1][0][0][0])
	}
}

func TestPolygonize_NoiseFaceDropped(t *testing.T) {
	// A face below the noise area threshold is discarded.
	polys := Polygonize(rectSegments(0, 0, 0.0005, 0.0005))
	if len(polys) != 0 {
		t.Errorf("Expected sub-threshold face to be dropped, got %d polygons", len(polys))
	}
}

func TestPolygonize_SnapsNearCoincidentEndpoints(t *testing.T) {
	// Endpoints within the snap tolerance fuse into one node, so a hairline
	// gap at a corner still closes the room.
	segs := []Segment{
		seg(0, 0, 10, 0),
		seg(10, 0+4e-8, 10, 6),
		seg(10, 6, 0, 6),
		seg(0, 6, 0, 4e-8),
	}

	polys := Polygonize(segs)
	if len(polys) != 1 {
		t.Fatalf("Expected near-coincident endpoints to close 1 polygon, got %d", len(polys))
	}
}

func TestPolygonize_Deterministic(t *testing.T) {
	segs := append(rectSegments(0, 0, 10, 6), seg(5, 0, 5, 6))

	first := Polygonize(segs)
	second := Polygonize(segs)
	if !reflect.DeepEqual(first, second) {
		t.Error("Polygonize is not deterministic for identical input")
	}
}

// ---------------------------------------------------------------------------
// noding internals
// ---------------------------------------------------------------------------

func TestNodeSegments_CrossingSplit(t *testing.T) {
	points, edges := nodeSegments([]Segment{
		seg(0, 0, 10, 0),
		seg(5, -5, 5, 5),
	})

	// The crossing introduces one shared node; each input splits in two.
	if len(points) != 5 {
		t.Errorf("len(points) = %d, want 5", len(points))
	}
	if len(edges) != 4 {
		t.Errorf("len(edges) = %d, want 4", len(edges))
	}
}

func TestNodeSegments_CollinearOverlap(t *testing.T) {
	points, edges := nodeSegments([]Segment{
		seg(0, 0, 10, 0),
		seg(4, 0, 6, 0),
	})

	if len(points) != 4 {
		t.Errorf("len(points) = %d, want 4", len(points))
	}
	// Overlapping runs dedupe into three edges along the line.
	if len(edges) != 3 {
		t.Errorf("len(edges) = %d, want 3", len(edges))
	}
}

func TestPruneDangles_RemovesChains(t *testing.T) {
	// Triangle 0-1-2 plus a two-edge tail 2-3-4.
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}}

	kept := pruneDangles(5, edges)
	if len(kept) != 3 {
		t.Fatalf("Expected 3 surviving edges, got %d", len(kept))
	}
	for _, e := range kept {
		if e[0] > 2 || e[1] > 2 {
			t.Errorf("Dangle edge %v survived pruning", e)
		}
	}
}
