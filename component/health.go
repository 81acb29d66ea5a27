package component

// Health is an integer hit-point pool clamped to [0, Max] with an
// invulnerability flag. The owner decides how long invulnerability lasts.
type Health struct {
	max          int
	current      int
	invulnerable bool

	// OnChanged fires with the new value whenever Current changes.
	OnChanged func(current int)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{max: max, current: max}
}

func (h *Health) Current() int {
	if h == nil {
		return 0
	}
	return h.current
}

func (h *Health) Max() int {
	if h == nil {
		return 0
	}
	return h.max
}

// Depleted reports whether health reached zero.
func (h *Health) Depleted() bool {
	return h == nil || h.current <= 0
}

func (h *Health) Invulnerable() bool {
	return h != nil && h.invulnerable
}

func (h *Health) SetInvulnerable(v bool) {
	if h == nil {
		return
	}
	h.invulnerable = v
}

// Damage subtracts amount, floored at zero. It is a no-op at zero health,
// while invulnerable, or for non-positive amounts. Returns true if applied.
func (h *Health) Damage(amount int) bool {
	if h == nil || h.current <= 0 || h.invulnerable || amount <= 0 {
		return false
	}
	h.set(h.current - amount)
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.current <= 0 || amount <= 0 {
		return
	}
	h.set(h.current + amount)
}

// Restore refills health and clears invulnerability.
func (h *Health) Restore() {
	if h == nil {
		return
	}
	h.invulnerable = false
	h.set(h.max)
}

// SetMax changes the maximum and clamps Current if needed.
func (h *Health) SetMax(v int) {
	if h == nil {
		return
	}
	if v <= 0 {
		v = 1
	}
	h.max = v
	if h.current > h.max {
		h.set(h.max)
	}
}

func (h *Health) set(v int) {
	if v < 0 {
		v = 0
	}
	if v > h.max {
		v = h.max
	}
	if v == h.current {
		return
	}
	h.current = v
	if h.OnChanged != nil {
		h.OnChanged(v)
	}
}
