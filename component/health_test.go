package component

import "testing"

func TestHealthDamage(t *testing.T) {
	tests := []struct {
		name         string
		start        int
		invulnerable bool
		amount       int
		wantApplied  bool
		wantCurrent  int
	}{
		{"normal hit", 3, false, 1, true, 2},
		{"floors at zero", 2, false, 5, true, 0},
		{"invulnerable", 3, true, 1, false, 3},
		{"zero amount", 3, false, 0, false, 3},
		{"already empty", 0, false, 1, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth(3)
			h.current = tt.start
			h.SetInvulnerable(tt.invulnerable)
			if got := h.Damage(tt.amount); got != tt.wantApplied {
				t.Fatalf("Damage() = %v, want %v", got, tt.wantApplied)
			}
			if h.Current() != tt.wantCurrent {
				t.Fatalf("Current() = %d, want %d", h.Current(), tt.wantCurrent)
			}
		})
	}
}

func TestHealthOnChangedFiresOncePerChange(t *testing.T) {
	h := NewHealth(1)
	var got []int
	h.OnChanged = func(v int) { got = append(got, v) }

	h.Damage(1)
	h.Damage(1)

	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("notifications = %v, want [0]", got)
	}
	if !h.Depleted() {
		t.Fatalf("expected depleted health")
	}
}

func TestHealthRestoreAndHeal(t *testing.T) {
	h := NewHealth(3)
	h.Damage(2)
	h.SetInvulnerable(true)
	h.Heal(5)
	if h.Current() != 3 {
		t.Fatalf("Heal should clamp to max, got %d", h.Current())
	}

	h.current = 0
	h.Heal(1)
	if h.Current() != 0 {
		t.Fatalf("Heal should not revive, got %d", h.Current())
	}

	h.Restore()
	if h.Current() != 3 || h.Invulnerable() {
		t.Fatalf("Restore: current=%d invulnerable=%v", h.Current(), h.Invulnerable())
	}
}

func TestHealthSetMaxClamps(t *testing.T) {
	h := NewHealth(5)
	h.SetMax(2)
	if h.Current() != 2 || h.Max() != 2 {
		t.Fatalf("current=%d max=%d, want 2/2", h.Current(), h.Max())
	}
	h.SetMax(0)
	if h.Max() != 1 {
		t.Fatalf("max = %d, want 1", h.Max())
	}
}

func TestNilHealth(t *testing.T) {
	var h *Health
	if h.Damage(1) || h.Current() != 0 || !h.Depleted() {
		t.Fatalf("nil health should be inert")
	}
	h.Restore()
	h.SetInvulnerable(true)
}
