package entity

import "github.com/milk9111/glider/common"

// Pole is a swing anchor. The grab zone hangs below the anchor.
type Pole struct {
	ID     uint64
	X, Y   float64
	Length float64
	angle  float64
}

func (p *Pole) Anchor() (float64, float64) { return p.X, p.Y }
func (p *Pole) Angle() float64             { return p.angle }
func (p *Pole) SetAngle(deg float64)       { p.angle = deg }

// Rect returns the grab zone.
func (p *Pole) Rect() common.Rect {
	return common.Rect{X: p.X - 12, Y: p.Y, Width: 24, Height: p.Length}
}

// Teleporter moves the player to its target and makes that the checkpoint.
type Teleporter struct {
	ID               uint64
	Area             common.Rect
	TargetX, TargetY float64
}

// Hazard damages the player on contact.
type Hazard struct {
	ID     uint64
	Area   common.Rect
	Damage int
}

// Goal ends the level.
type Goal struct {
	ID   uint64
	Area common.Rect
}
