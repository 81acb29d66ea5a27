package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	categorySolid uint = 1 << iota
	categoryActor
)

// Space owns the Chipmunk space, the static level geometry and every actor
// body created from it.
type Space struct {
	grid   Grid
	space  *cp.Space
	bodies []*CPBody
}

// NewSpace builds static collision shapes for grid. Actors never collide with
// each other, only with tiles and the left, right and top world edges; the
// bottom edge stays open so bodies can fall out of the level.
func NewSpace(grid Grid, gravity float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	s := &Space{grid: grid, space: space}
	s.buildStaticShapes()
	return s
}

// Grid returns the tile layer the space was built from.
func (s *Space) Grid() Grid {
	return s.grid
}

// SurfaceBelow implements SurfaceQuerier.
func (s *Space) SurfaceBelow(x, y float64) (Surface, bool) {
	return s.grid.SurfaceBelow(x, y)
}

func (s *Space) addSolid(shape *cp.Shape) {
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
}

func (s *Space) buildStaticShapes() {
	g := s.grid
	if !g.valid() {
		return
	}
	ts := float64(g.TileSize)

	// Merge contiguous solid tiles into rectangles, width first then height.
	processed := make([]bool, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if processed[idx] {
				continue
			}
			if g.Tiles[idx] == 0 {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < g.Width {
				idx2 := y*g.Width + x + w
				if processed[idx2] || g.Tiles[idx2] == 0 {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < g.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*g.Width + xi
					if processed[idx2] || g.Tiles[idx2] == 0 {
						break heightLoop
					}
				}
				h++
			}

			x0 := float64(x) * ts
			y0 := float64(y) * ts
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*ts, T: y0 + float64(h)*ts}
			s.addSolid(cp.NewBox2(s.space.StaticBody, bb, 0))

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}
		}
	}

	worldW, worldH := g.WorldSize()
	edges := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}
	for _, e := range edges {
		s.addSolid(cp.NewSegment(s.space.StaticBody, e[0], e[1], 1))
	}
}

// NewBody adds a dynamic box of size w x h centered on (x, y).
func (s *Space) NewBody(x, y, w, h float64) *CPBody {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryActor, categorySolid))

	s.space.AddBody(body)
	s.space.AddShape(shape)

	b := &CPBody{
		space:        s,
		body:         body,
		shape:        shape,
		w:            w,
		h:            h,
		gravityScale: 1,
		enabled:      true,
		ox:           0.5,
		oy:           0.5,
	}
	body.SetVelocityUpdateFunc(b.updateVelocity)
	s.bodies = append(s.bodies, b)
	return b
}

// RemoveBody detaches b from the space.
func (s *Space) RemoveBody(b *CPBody) {
	if b == nil || b.space != s {
		return
	}
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	b.space = nil
}

// Step advances the simulation and refreshes every body's contact flags.
// Velocity into a side blocked on the previous step is dropped first.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range s.bodies {
		b.clipVelocity()
	}
	s.space.Step(dt)
	for _, b := range s.bodies {
		b.refreshContacts()
	}
}
