package viz

import (
	"math"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
)

// Plot renders world-space geometry onto a Braille canvas. World
// coordinates are mapped linearly from bounds to the canvas sub-pixel
// grid, y pointing down as in the original screen layout.
type Plot struct {
	Canvas *Canvas
	Bounds geom.Rect
}

func NewPlot(w, h int, bounds geom.Rect) *Plot {
	return &Plot{Canvas: NewCanvas(w, h), Bounds: bounds}
}

func (p *Plot) project(v geom.Vec2) (int, int) {
	px := (v.X - p.Bounds.Min.X) / p.Bounds.Width() * float64(p.Canvas.Width*2-1)
	py := (v.Y - p.Bounds.Min.Y) / p.Bounds.Height() * float64(p.Canvas.Height*4-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Trajectory draws the polyline through the given points. Segments
// with a non-finite endpoint are skipped.
func (p *Plot) Trajectory(traj []geom.Vec2) {
	for i := 1; i < len(traj); i++ {
		if !traj[i-1].IsValid() || !traj[i].IsValid() {
			continue
		}
		x0, y0 := p.project(traj[i-1])
		x1, y1 := p.project(traj[i])
		p.Canvas.DrawLine(x0, y0, x1, y1)
	}
}

// Planets draws each planet as a circle with radius proportional to
// the square root of its mass, matching how the original renderer
// sized them.
func (p *Plot) Planets(sys *field.System) {
	scale := float64(p.Canvas.Width*2) / p.Bounds.Width()
	for _, planet := range sys.Planets {
		cx, cy := p.project(planet.Pos)
		r := int(math.Round(math.Sqrt(planet.Mass) * 10 * scale))
		p.Canvas.DrawCircle(cx, cy, r)
	}
}

// VectorField samples f on a world-space grid with the given spacing
// and draws each sample as a short segment along the field direction.
func (p *Plot) VectorField(f func(geom.Vec2) geom.Vec2, spacing float64) {
	if spacing <= 0 {
		return
	}
	segment := spacing * 0.4
	for y := p.Bounds.Min.Y + spacing/2; y < p.Bounds.Max.Y; y += spacing {
		for x := p.Bounds.Min.X + spacing/2; x < p.Bounds.Max.X; x += spacing {
			at := geom.Vec2{X: x, Y: y}
			v := f(at)
			if !v.IsValid() || v.SqMag() == 0 {
				continue
			}
			tip := at.Add(v.Norm().Scale(segment))
			x0, y0 := p.project(at)
			x1, y1 := p.project(tip)
			p.Canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

func (p *Plot) String() string { return p.Canvas.String() }
