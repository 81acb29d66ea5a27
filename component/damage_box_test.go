package component

import "testing"

func TestDamageBoxInertByDefault(t *testing.T) {
	d := NewDamageBox(FactionPlayer)
	if d.Active() {
		t.Fatalf("new box should be inactive")
	}
	if d.TryHit(1) {
		t.Fatalf("inactive box should not hit")
	}
	if r := d.Rect(); r.Width != 0 || r.Height != 0 {
		t.Fatalf("inactive box has size %vx%v", r.Width, r.Height)
	}
}

func TestDamageBoxHitsOncePerActivation(t *testing.T) {
	d := NewDamageBox(FactionEnemy)
	d.Activate(40, 20, 2)
	d.MoveTo(100, 50)

	if !d.TryHit(7) {
		t.Fatalf("first hit should land")
	}
	if d.TryHit(7) {
		t.Fatalf("second hit on same target should not land")
	}
	if !d.TryHit(8) {
		t.Fatalf("other targets should still be hittable")
	}

	d.Deactivate()
	if d.TryHit(9) || d.Damage() != 0 {
		t.Fatalf("deactivated box should be inert")
	}

	d.Activate(40, 20, 2)
	if !d.TryHit(7) {
		t.Fatalf("re-activation should clear the hit set")
	}
}

func TestDamageBoxRect(t *testing.T) {
	d := NewDamageBox(FactionPlayer)
	d.Activate(40, 20, 1)
	d.MoveTo(100, 50)
	r := d.Rect()
	if r.X != 80 || r.Y != 40 || r.Width != 40 || r.Height != 20 {
		t.Fatalf("rect = %+v", r)
	}
}

func TestFactionString(t *testing.T) {
	if FactionPlayer.String() != "player" || FactionEnemy.String() != "enemy" || Faction(9).String() != "unknown" {
		t.Fatalf("unexpected faction names")
	}
}
