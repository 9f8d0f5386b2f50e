// Package plan reconstructs room polygons from 2-D architectural line work and
// derives per-room measurements and construction material estimates.
//
// The pipeline is a pure function chain: drawing entities are flattened into
// straight segments, the segments are noded into a planar arrangement and
// polygonized into room boundaries, each room is measured, and the aggregate
// measurements feed a deterministic material estimate. No stage keeps state
// between runs.
package plan

import "github.com/paulmach/orb"

// EntityKind tags a drawing entity as a straight line or a vertex chain.
type EntityKind string

const (
	// EntityLine is a straight line with exactly two endpoints.
	EntityLine EntityKind = "line"

	// EntityPolyline is a chain of three or more vertices, open or closed.
	EntityPolyline EntityKind = "polyline"
)

// Entity is one raw drawing entity. Coordinates are 2-D drawing units;
// any z component has already been dropped by the loader.
type Entity struct {
	Kind   EntityKind  `json:"kind"`
	Points []orb.Point `json:"points"`
}

// Segment is one straight edge contributed by a line entity or by one edge of
// a polyline. Immutable once created.
type Segment struct {
	A orb.Point `json:"a"`
	B orb.Point `json:"b"`
}

// Bounds is an axis-aligned bounding box in drawing units.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// boundsOf converts an orb.Bound to the serializable Bounds form.
func boundsOf(b orb.Bound) Bounds {
	return Bounds{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Room is a measured view over one reconstructed polygon. IDs are 1-based
// sequence positions, stable only within a single run.
type Room struct {
	ID              int     `json:"id"`
	Area            float64 `json:"area"`
	CarpetArea      float64 `json:"carpet_area"`
	Perimeter       float64 `json:"perimeter"`
	LongWallLength  float64 `json:"long_wall_length"`
	ShortWallLength float64 `json:"short_wall_length"`
	Bounds          Bounds  `json:"bounds"`

	// CarpetMethod records whether the carpet area came from the geometric
	// inward offset or from the linear approximation fallback.
	CarpetMethod CarpetMethod `json:"carpet_method"`
}

// Totals are arithmetic sums across all rooms, never recomputed from a merged
// boundary.
type Totals struct {
	BuiltUpArea float64 `json:"built_up_area"`
	CarpetArea  float64 `json:"carpet_area"`
	Perimeter   float64 `json:"perimeter"`
}

// AggregateResult is the output of the room metrics engine for one run.
type AggregateResult struct {
	Units         string   `json:"units"`
	WallThickness float64  `json:"wall_thickness"`
	Rooms         []Room   `json:"rooms"`
	Totals        Totals   `json:"totals"`
	Notes         []string `json:"notes"`
}

// WorkItem is one line of the fixed material/activity catalog. Most items
// carry Quantity; sand and coarse aggregate carry QuantityM3 instead,
// mirroring the measurement-sheet convention.
type WorkItem struct {
	Item       string  `json:"item"`
	Quantity   float64 `json:"quantity,omitempty"`
	QuantityM3 float64 `json:"quantity_m3,omitempty"`
	Unit       string  `json:"unit"`
}

// Value returns whichever quantity field the item carries.
func (w WorkItem) Value() float64 {
	if w.QuantityM3 != 0 {
		return w.QuantityM3
	}
	return w.Quantity
}

// ConcreteBreakdown itemizes the dry materials for a concrete volume.
type ConcreteBreakdown struct {
	ConcreteVolumeM3 float64 `json:"concrete_volume_m3"`
	CementKg         float64 `json:"cement_kg"`
	CementBags       float64 `json:"cement_bags"`
	SandM3           float64 `json:"sand_m3"`
	AggregateM3      float64 `json:"aggregate_m3"`
}

// MaterialsResult is the output of the material estimator for one run.
type MaterialsResult struct {
	WorkItems         []WorkItem        `json:"workitems"`
	ConcreteBreakdown ConcreteBreakdown `json:"concrete_breakdown"`
	PlasterVolumeM3   float64           `json:"plaster_volume_m3"`
	TilesCount        int               `json:"tiles_count"`
	BricksCount       float64           `json:"bricks_count"`
	PaintLiters       float64           `json:"paint_liters"`
	ContingencyNote   string            `json:"contingency_note"`
}
