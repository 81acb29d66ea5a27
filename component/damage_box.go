package component

import "github.com/milk9111/glider/common"

// Faction separates friend from foe when resolving DamageBox overlaps.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// DamageBox is an attack volume owned by exactly one attacker. It is inert
// until Activate and hits each target at most once per activation.
type DamageBox struct {
	Owner Faction

	active bool
	width  float64
	height float64
	damage int
	cx, cy float64

	hitTargets map[uint64]bool
}

// NewDamageBox returns an inert box owned by faction.
func NewDamageBox(owner Faction) *DamageBox {
	return &DamageBox{Owner: owner}
}

// Activate sizes the box, sets its damage payload and clears the hit set.
func (d *DamageBox) Activate(width, height float64, damage int) {
	if d == nil {
		return
	}
	d.active = true
	d.width = width
	d.height = height
	d.damage = damage
	clear(d.hitTargets)
}

func (d *DamageBox) Deactivate() {
	if d == nil {
		return
	}
	d.active = false
	d.width = 0
	d.height = 0
	d.damage = 0
}

func (d *DamageBox) Active() bool {
	return d != nil && d.active
}

func (d *DamageBox) Damage() int {
	if d == nil {
		return 0
	}
	return d.damage
}

// MoveTo centers the box on (cx, cy).
func (d *DamageBox) MoveTo(cx, cy float64) {
	if d == nil {
		return
	}
	d.cx, d.cy = cx, cy
}

// Rect returns the world-space bounds of the box.
func (d *DamageBox) Rect() common.Rect {
	if d == nil {
		return common.Rect{}
	}
	return common.RectFromCenter(d.cx, d.cy, d.width, d.height)
}

// TryHit records target and reports whether this is its first hit since the
// last activation. Inactive boxes never hit.
func (d *DamageBox) TryHit(target uint64) bool {
	if !d.Active() {
		return false
	}
	if d.hitTargets == nil {
		d.hitTargets = make(map[uint64]bool)
	}
	if d.hitTargets[target] {
		return false
	}
	d.hitTargets[target] = true
	return true
}
