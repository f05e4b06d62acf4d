package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/render"
	"github.com/milk9111/collide/prefabs"
	"github.com/milk9111/collide/scene"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	rayLength  = 2000
	normalSize = 24
)

// Game steps a scene and draws its colliders. Space pauses, N steps while
// paused, R reloads the scene and a left click casts a ray from the player.
type Game struct {
	sceneName string
	sim       *scene.Scene
	view      render.DebugView
	paused    bool

	touching map[ecs.Entity]bool
	contacts []render.ContactLine
	ray      *rayShot
}

type rayShot struct {
	from, to cp.Vector
	hit      bool
}

func NewGame(sceneName string, zoom float64, paused bool) (*Game, error) {
	if zoom <= 0 {
		zoom = 1
	}
	g := &Game{
		sceneName: sceneName,
		// world origin at the center of the screen
		view: render.DebugView{
			Camera: cp.Vector{X: -baseWidth / 2 / zoom, Y: -baseHeight / 2 / zoom},
			Zoom:   zoom,
		},
		paused: paused,
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reload() error {
	spec, err := prefabs.LoadScene(g.sceneName)
	if err != nil {
		return err
	}
	sim, err := scene.FromSpec(spec, scene.Options{})
	if err != nil {
		return err
	}
	g.sim = sim
	g.touching = map[ecs.Entity]bool{}
	g.contacts = nil
	g.ray = nil
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			log.Printf("reload %s: %v", g.sceneName, err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.castRay()
	}

	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}
	g.sim.Update()
	g.collectContacts()
	return nil
}

// collectContacts records which entities touch after this tick, and the
// contact normal of each pair still overlapping.
func (g *Game) collectContacts() {
	w := g.sim.World()
	g.touching = map[ecs.Entity]bool{}
	g.contacts = g.contacts[:0]
	for _, evt := range g.sim.Events() {
		if evt.Kind == ecs.CollisionEventExit {
			continue
		}
		g.touching[evt.A] = true
		g.touching[evt.B] = true
		info, ok := g.sim.Collisions.Check(w, evt.A, evt.B)
		if !ok {
			continue
		}
		tr, ok := ecs.Get(w, evt.A, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		g.contacts = append(g.contacts, render.ContactLine{From: tr.Position, Normal: info.Normal, Length: normalSize})
	}
}

func (g *Game) castRay() {
	player, ok := g.sim.Lookup("player")
	if !ok {
		return
	}
	w := g.sim.World()
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cx, cy := ebiten.CursorPosition()
	zoom := g.view.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	target := cp.Vector{X: float64(cx)/zoom + g.view.Camera.X, Y: float64(cy)/zoom + g.view.Camera.Y}
	dir := target.Sub(tr.Position)
	if dir.LengthSq() == 0 {
		return
	}

	// ignore the player's own layer so the ray starts outside every shape
	mask := component.LayerAll
	if col, ok := ecs.Get(w, player, component.ColliderComponent.Kind()); ok {
		mask &^= col.Layer
	}
	hit, ok := g.sim.Collisions.RaycastMask(w, tr.Position, dir, rayLength, mask)
	if !ok {
		g.ray = &rayShot{from: tr.Position, to: tr.Position.Add(dir.Normalize().Mult(rayLength))}
		return
	}
	g.ray = &rayShot{from: tr.Position, to: hit.Point, hit: true}
	log.Printf("ray hit %s at (%.1f, %.1f) distance %.1f", g.sim.NameOf(hit.Entity), hit.Point.X, hit.Point.Y, hit.Distance)
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.sim.World()
	g.view.Touching = g.touching
	render.DrawColliders(screen, w, g.view)
	render.DrawContactNormals(screen, g.view, g.contacts)
	if g.ray != nil {
		clr := colornames.Lightgrey
		if g.ray.hit {
			clr = colornames.Orangered
		}
		render.DrawRay(screen, g.view, g.ray.from, g.ray.to, clr)
	}
	render.DrawStats(screen, g.sim.Tick(), w.EntityCount(), g.sim.Collisions.ChecksPerformed(), g.sim.Collisions.CollisionCount())
	if g.paused {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("paused (%.0f FPS)", ebiten.ActualFPS()), 10, 80)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
