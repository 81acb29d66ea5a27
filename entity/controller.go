package entity

import (
	"time"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/component"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/player"
)

// Controller is the behaviour attached to a physics body. The player and
// every enemy kind implement it.
type Controller interface {
	ID() uint64
	Faction() component.Faction
	Body() physics.Body
	DamageBox() *component.DamageBox
	HealthComponent() *component.Health
	Alive() bool
	PreStep(dt time.Duration)
	PostStep(dt time.Duration)
}

// Scorer receives credit for hits landed with its DamageBox.
type Scorer interface {
	ScoreHit(hit player.Hit)
}

// Bountied is a target worth points when killed.
type Bountied interface {
	Bounty() int
}

// Knockbackable reacts to being hit from a point.
type Knockbackable interface {
	Knockback(fromX, fromY float64)
}

// Hurtbox returns the world bounds a controller can be hit in.
func Hurtbox(c Controller) common.Rect {
	x, y := c.Body().Position()
	w, h := c.Body().Size()
	return common.RectFromCenter(x, y, w, h)
}

var (
	_ Controller = (*player.Controller)(nil)
	_ Scorer     = (*player.Controller)(nil)
)
