package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"golang.org/x/image/colornames"
)

// DebugView maps world space onto the screen for collider outlines.
type DebugView struct {
	Camera cp.Vector
	Zoom   float64
	// Touching entities are outlined in the contact color.
	Touching map[ecs.Entity]bool
}

func (v DebugView) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v DebugView) toScreen(p cp.Vector) (float32, float32) {
	z := v.zoom()
	return float32((p.X - v.Camera.X) * z), float32((p.Y - v.Camera.Y) * z)
}

// ColliderColor picks the outline color for a collider.
func ColliderColor(col *component.Collider, touching bool) color.Color {
	switch {
	case touching:
		return colornames.Red
	case col.IsTrigger:
		return colornames.Gold
	case col.IsStatic:
		return colornames.Steelblue
	default:
		return colornames.Limegreen
	}
}

// DrawColliders outlines every collider in w.
func DrawColliders(screen *ebiten.Image, w *ecs.World, view DebugView) {
	if screen == nil || w == nil {
		return
	}
	z := view.zoom()
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, tr *component.Transform) {
		clr := ColliderColor(col, view.Touching[e])
		center := tr.Position.Add(col.Offset)
		x, y := view.toScreen(center)

		if col.Shape == component.ShapeCircle {
			vector.StrokeCircle(screen, x, y, float32(col.Radius()*z), 1, clr, true)
			return
		}
		half := col.HalfExtents()
		left, top := view.toScreen(center.Sub(half))
		vector.StrokeRect(screen, left, top, float32(col.Size.X*z), float32(col.Size.Y*z), 1, clr, false)
	})
}

// DrawContactNormals draws a short line from A along each contact normal.
func DrawContactNormals(screen *ebiten.Image, view DebugView, contacts []ContactLine) {
	if screen == nil {
		return
	}
	for _, c := range contacts {
		x1, y1 := view.toScreen(c.From)
		x2, y2 := view.toScreen(c.From.Add(c.Normal.Mult(c.Length)))
		vector.StrokeLine(screen, x1, y1, x2, y2, 2, colornames.Orange, true)
	}
}

// ContactLine is one normal to visualise.
type ContactLine struct {
	From   cp.Vector
	Normal cp.Vector
	Length float64
}

func DrawStats(screen *ebiten.Image, tick, entities, checks, contacts int) {
	if screen == nil {
		return
	}
	text := fmt.Sprintf("Tick: %d\nEntities: %d\nChecks: %d\nContacts: %d", tick, entities, checks, contacts)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// DrawRay draws a world-space segment.
func DrawRay(screen *ebiten.Image, view DebugView, from, to cp.Vector, clr color.Color) {
	if screen == nil {
		return
	}
	x1, y1 := view.toScreen(from)
	x2, y2 := view.toScreen(to)
	vector.StrokeLine(screen, x1, y1, x2, y2, 1, clr, true)
}
