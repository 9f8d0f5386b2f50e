package plan

import "github.com/paulmach/orb"

// TakeoffResult bundles the output of one full pipeline run.
type TakeoffResult struct {
	Polygons  []orb.Polygon   `json:"-"`
	Aggregate AggregateResult `json:"aggregate"`
	Materials MaterialsResult `json:"materials"`
}

// Takeoff runs the full reconstruction and estimation pipeline over a set of
// drawing entities: extract segments, polygonize, measure rooms, estimate
// materials. The whole chain is a pure transformation; identical input always
// yields identical output, so callers may run independent takeoffs in
// parallel without synchronization.
//
// A drawing that yields no closed rooms is not an error: the result simply
// carries an empty room list and zero totals, to be surfaced by the caller as
// "no rooms detected".
func Takeoff(ents []Entity, cfg Config) TakeoffResult {
	segs := ExtractSegments(ents)
	polys := Polygonize(segs)
	aggregate := ComputeMetrics(polys, cfg.WallThickness, cfg.Units)
	materials := EstimateMaterials(aggregate, MaterialOptions{
		CementBagKg:        cfg.CementBagKg,
		PlasterThicknessMM: cfg.PlasterThicknessMM,
		TileSizeMM:         cfg.TileSizeMM,
	})

	return TakeoffResult{
		Polygons:  polys,
		Aggregate: aggregate,
		Materials: materials,
	}
}
