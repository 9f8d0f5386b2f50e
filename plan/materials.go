package plan

import (
	"fmt"
	"math"
)

// Fixed estimation constants, in meters and kilograms. These are the
// documented business contracts of the estimator and must not drift.
const (
	excavationDepth  = 1.0  // assumed trench depth along the perimeter
	excavationWidth  = 1.0  // assumed average trench width
	footingDepth     = 0.5
	footingWidth     = 0.6
	slabThickness    = 0.15
	pccThickness     = 0.10 // plain cement concrete bed under the slab
	wallHeight       = 3.0
	bricksPerM3      = 500.0
	steelKgPerM3     = 80.0
	paintM2PerLiter  = 10.0
	dryVolumeFactor  = 1.54 // wet-to-dry concrete volume conversion
	cementDensityKg  = 1440.0
)

// ConcreteMix is a cement:sand:aggregate proportion by volume parts.
type ConcreteMix [3]float64

// DefaultConcreteMix is the nominal 1:2:4 mix used for all estimated concrete.
var DefaultConcreteMix = ConcreteMix{1, 2, 4}

// MaterialOptions are the tunable constants of the estimator. Use
// DefaultMaterialOptions for the standard values; a zero TileSizeMM is honored
// and yields zero tiles rather than a division fault.
type MaterialOptions struct {
	CementBagKg        float64
	PlasterThicknessMM float64
	TileSizeMM         float64
}

// DefaultMaterialOptions returns the documented defaults (50 kg bags, 12 mm
// plaster, 600 mm square tiles).
func DefaultMaterialOptions() MaterialOptions {
	return MaterialOptions{
		CementBagKg:        DefaultCementBagKg,
		PlasterThicknessMM: DefaultPlasterThicknessMM,
		TileSizeMM:         DefaultTileSizeMM,
	}
}

// ConcreteMaterialsForVolume breaks a wet concrete volume down into dry
// constituents for the given mix. The dry volume is the wet volume times the
// dry-volume factor; each constituent takes its proportional share of the dry
// volume, and cement mass follows from cement density. Pure function of its
// inputs; reusable for any volume/mix pair.
func ConcreteMaterialsForVolume(volumeM3 float64, mix ConcreteMix, cementBagKg float64) ConcreteBreakdown {
	totalParts := mix[0] + mix[1] + mix[2]
	if totalParts <= 0 || cementBagKg <= 0 {
		return ConcreteBreakdown{ConcreteVolumeM3: volumeM3}
	}

	dryVolume := volumeM3 * dryVolumeFactor
	cementVolume := dryVolume * (mix[0] / totalParts)
	cementKg := cementVolume * cementDensityKg

	return ConcreteBreakdown{
		ConcreteVolumeM3: volumeM3,
		CementKg:         cementKg,
		CementBags:       cementKg / cementBagKg,
		SandM3:           dryVolume * (mix[1] / totalParts),
		AggregateM3:      dryVolume * (mix[2] / totalParts),
	}
}

// EstimateMaterials derives the fixed 12-item work catalog from one run's
// aggregate measurements. All formulas are deterministic closed forms over the
// totals and the wall thickness; the result order never changes.
func EstimateMaterials(result AggregateResult, opts MaterialOptions) MaterialsResult {
	builtUp := result.Totals.BuiltUpArea
	carpet := result.Totals.CarpetArea
	perimeter := result.Totals.Perimeter

	excavationVolume := perimeter * excavationWidth * excavationDepth
	footingVolume := perimeter * footingWidth * footingDepth
	slabVolume := builtUp * slabThickness
	pccVolume := builtUp * pccThickness

	wallVolume := perimeter * result.WallThickness * wallHeight
	bricksRequired := wallVolume * bricksPerM3

	wallArea := perimeter * wallHeight
	plasterVolume := wallArea * (opts.PlasterThicknessMM / 1000.0)

	tileAreaM2 := (opts.TileSizeMM / 1000.0) * (opts.TileSizeMM / 1000.0)
	tilesRequired := 0
	if tileAreaM2 > 0 {
		tilesRequired = int(math.Ceil(carpet / tileAreaM2))
	}

	totalConcreteVolume := slabVolume + footingVolume + pccVolume
	concrete := ConcreteMaterialsForVolume(totalConcreteVolume, DefaultConcreteMix, opts.CementBagKg)

	paintLiters := wallArea / paintM2PerLiter
	reinforcementKg := totalConcreteVolume * steelKgPerM3

	workItems := []WorkItem{
		{Item: "Excavation", Quantity: excavationVolume, Unit: "m3"},
		{Item: "PCC (under slab)", Quantity: pccVolume, Unit: "m3"},
		{Item: "Footing concrete", Quantity: footingVolume, Unit: "m3"},
		{Item: "RCC slab/beams", Quantity: slabVolume, Unit: "m3"},
		{Item: "Reinforcement steel", Quantity: reinforcementKg, Unit: "kg"},
		{Item: "Masonry (bricks)", Quantity: bricksRequired, Unit: "nos"},
		{Item: "Sand (for concrete/mortar)", QuantityM3: concrete.SandM3, Unit: "m3"},
		{Item: "Coarse aggregate", QuantityM3: concrete.AggregateM3, Unit: "m3"},
		{Item: "Cement", Quantity: concrete.CementBags, Unit: fmt.Sprintf("bags (%gkg)", opts.CementBagKg)},
		{Item: "Plaster (both sides)", Quantity: plasterVolume, Unit: "m3"},
		{Item: "Tiles / Flooring", Quantity: float64(tilesRequired), Unit: "nos"},
		{Item: "Paint (liters)", Quantity: paintLiters, Unit: "liters"},
	}

	return MaterialsResult{
		WorkItems:         workItems,
		ConcreteBreakdown: concrete,
		PlasterVolumeM3:   plasterVolume,
		TilesCount:        tilesRequired,
		BricksCount:       bricksRequired,
		PaintLiters:       paintLiters,
		ContingencyNote:   "Add ~10% contingency for waste and variations.",
	}
}
