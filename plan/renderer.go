package plan

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlanRenderer draws reconstructed room polygons as vector graphics, either
// SVG or rasterized PNG. Rendering is presentation only: geometry may be
// simplified for display, but the measured results never pass through here.
type PlanRenderer struct {
	Polygons []orb.Polygon

	// Rooms, when set, enables room-id labels on PNG output.
	Rooms []Room

	Scale       float64           // canvas millimeters per drawing unit
	Padding     float64           // padding in drawing units
	Resolution  canvas.Resolution // PNG output resolution
	GridSpacing float64           // grid line spacing in drawing units (0 disables)

	// SimplifyTolerance applies Douglas-Peucker to the drawn outlines, in
	// drawing units. Zero disables. Display only.
	SimplifyTolerance float64

	FillColor   color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64 // in canvas millimeters
}

// NewPlanRenderer creates a renderer with default presentation settings.
func NewPlanRenderer(polys []orb.Polygon) *PlanRenderer {
	return &PlanRenderer{
		Polygons:    polys,
		Scale:       10.0,
		Padding:     1.0,
		Resolution:  canvas.DPI(150),
		FillColor:   color.RGBA{25, 25, 25, 25}, // light wash, outlines carry the plan
		StrokeColor: color.RGBA{0, 0, 0, 255},
		StrokeWidth: 0.5,
	}
}

// canvasRenderer is the subset of the canvas renderers shared by the SVG and
// raster backends.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the plan as an SVG document.
func (r *PlanRenderer) RenderToSVG(w io.Writer) error {
	minX, minY, width, height := r.canvasBounds()

	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, minX, minY, width, height)

	if err := svgRenderer.Close(); err != nil {
		return fmt.Errorf("closing SVG renderer: %w", err)
	}
	return nil
}

// RenderToPNG rasterizes the plan and writes it as a PNG image. Room-id
// labels are drawn when Rooms is populated.
func (r *PlanRenderer) RenderToPNG(w io.Writer) error {
	minX, minY, width, height := r.canvasBounds()

	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, minX, minY, width, height)
	r.drawRoomLabels(rast, minX, minY)

	return png.Encode(w, rast)
}

// renderToCanvas draws background, room polygons and grid (shared by SVG and
// PNG paths).
func (r *PlanRenderer) renderToCanvas(renderer canvasRenderer, minX, minY, width, height float64) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	roomStyle := canvas.DefaultStyle
	roomStyle.Fill = canvas.Paint{Color: r.FillColor}
	roomStyle.Stroke = canvas.Paint{Color: r.StrokeColor}
	roomStyle.StrokeWidth = r.StrokeWidth

	for _, poly := range r.Polygons {
		if len(poly) == 0 {
			continue
		}

		ring := poly[0]
		if r.SimplifyTolerance > 0 {
			ring = r.simplifyRing(ring)
		}

		cp := &canvas.Path{}
		for i, pt := range ring {
			cx, cy := r.toCanvas(pt, minX, minY)
			if i == 0 {
				cp.MoveTo(cx, cy)
			} else {
				cp.LineTo(cx, cy)
			}
		}
		cp.Close()
		renderer.RenderPath(cp, roomStyle, canvas.Identity)
	}

	if r.GridSpacing > 0 {
		r.drawGrid(renderer, minX, minY, width, height)
	}
}

// simplifyRing reduces the drawn outline with Douglas-Peucker. The ring is
// cloned first so the measured geometry is untouched.
func (r *PlanRenderer) simplifyRing(ring orb.Ring) orb.Ring {
	ls := orb.LineString(ring).Clone()
	s, ok := simplify.DouglasPeucker(r.SimplifyTolerance).Simplify(ls).(orb.LineString)
	if !ok || len(s) < 4 {
		return ring
	}
	return orb.Ring(s)
}

func (r *PlanRenderer) drawGrid(renderer canvasRenderer, minX, minY, width, height float64) {
	gridStyle := canvas.DefaultStyle
	gridStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	gridStyle.Stroke = canvas.Paint{Color: canvas.Gray}
	gridStyle.StrokeWidth = 0.2
	gridStyle.Dashes = []float64{1.0, 1.0}

	maxX := minX + width/r.Scale
	maxY := minY + height/r.Scale

	for x := math.Ceil(minX/r.GridSpacing) * r.GridSpacing; x <= maxX; x += r.GridSpacing {
		p := &canvas.Path{}
		x1, y1 := r.toCanvas(orb.Point{x, minY}, minX, minY)
		x2, y2 := r.toCanvas(orb.Point{x, maxY}, minX, minY)
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		renderer.RenderPath(p, gridStyle, canvas.Identity)
	}
	for y := math.Ceil(minY/r.GridSpacing) * r.GridSpacing; y <= maxY; y += r.GridSpacing {
		p := &canvas.Path{}
		x1, y1 := r.toCanvas(orb.Point{minX, y}, minX, minY)
		x2, y2 := r.toCanvas(orb.Point{maxX, y}, minX, minY)
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		renderer.RenderPath(p, gridStyle, canvas.Identity)
	}
}

// drawRoomLabels overlays room ids at each polygon's bound center on the
// rasterized image.
func (r *PlanRenderer) drawRoomLabels(img draw.Image, minX, minY float64) {
	if len(r.Rooms) == 0 {
		return
	}

	dpmm := r.Resolution.DPMM()
	pixelHeight := img.Bounds().Max.Y

	for i, room := range r.Rooms {
		if i >= len(r.Polygons) {
			break
		}
		center := r.Polygons[i].Bound().Center()
		cx, cy := r.toCanvas(center, minX, minY)

		// Canvas y runs bottom-up, the image top-down.
		px := int(cx * dpmm)
		py := pixelHeight - int(cy*dpmm)

		drawText(img, px, py, fmt.Sprintf("%d", room.ID), color.RGBA{0, 0, 0, 255})
	}
}

// drawText renders text onto an image at the specified pixel position.
func drawText(img draw.Image, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// toCanvas maps a drawing-unit point to canvas millimeters.
func (r *PlanRenderer) toCanvas(p orb.Point, minX, minY float64) (float64, float64) {
	return (p[0] - minX + r.Padding) * r.Scale, (p[1] - minY + r.Padding) * r.Scale
}

// canvasBounds computes the drawing-space origin and the canvas dimensions in
// millimeters.
func (r *PlanRenderer) canvasBounds() (minX, minY, width, height float64) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	for _, poly := range r.Polygons {
		b := poly.Bound()
		minX = math.Min(minX, b.Min[0])
		minY = math.Min(minY, b.Min[1])
		maxX = math.Max(maxX, b.Max[0])
		maxY = math.Max(maxY, b.Max[1])
	}

	if len(r.Polygons) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	width = (maxX - minX + 2*r.Padding) * r.Scale
	height = (maxY - minY + 2*r.Padding) * r.Scale
	return minX, minY, width, height
}
