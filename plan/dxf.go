package plan

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/zooyer/dxf"
	"github.com/zooyer/dxf/entities"
)

// LoadDXF reads a DXF drawing and returns its LINE and LWPOLYLINE entities in
// the pipeline's entity model. Only the drawing container being unreadable is
// an error; individual entities that cannot be interpreted are skipped so a
// single bad entity never sinks the run. The z coordinate of every vertex is
// dropped.
func LoadDXF(path string) ([]Entity, error) {
	doc, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading DXF %s: %w", path, err)
	}
	return EntitiesFromDXF(doc), nil
}

// EntitiesFromDXF maps the supported modelspace entities of a parsed DXF
// document onto drawing entities. Unsupported entity types (inserts,
// dimensions, attributes) are ignored.
func EntitiesFromDXF(doc *dxf.Document) []Entity {
	var ents []Entity
	if doc == nil {
		return ents
	}

	for _, e := range doc.Entities {
		switch v := e.(type) {
		case *entities.Line:
			ents = append(ents, Entity{
				Kind: EntityLine,
				Points: []orb.Point{
					{v.Start.X, v.Start.Y},
					{v.End.X, v.End.Y},
				},
			})

		case *entities.LWPolyline:
			pts := make([]orb.Point, 0, len(v.Vertices))
			for _, p := range v.Vertices {
				pts = append(pts, orb.Point{p.X, p.Y})
			}
			if len(pts) >= 2 {
				ents = append(ents, Entity{Kind: EntityPolyline, Points: pts})
			}
		}
	}

	return ents
}
