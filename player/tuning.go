package player

import "time"

// Box is an attack volume size and its damage payload.
type Box struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Damage int     `yaml:"damage"`
}

// Tuning holds the read-only movement and combat constants. Distances are
// pixels, speeds pixels per second and angles degrees.
type Tuning struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`

	GlideSpeedFactor   float64       `yaml:"glide_speed_factor"`
	GlideGravityScale  float64       `yaml:"glide_gravity_scale"`
	GlideAngle         float64       `yaml:"glide_angle"`
	GlideStartDuration time.Duration `yaml:"glide_start_duration"`
	AngleResetDuration time.Duration `yaml:"angle_reset_duration"`

	TurnRadius   float64       `yaml:"turn_radius"`
	TurnDuration time.Duration `yaml:"turn_duration"`
	SpinRadius   float64       `yaml:"spin_radius"`
	SpinDuration time.Duration `yaml:"spin_duration"`

	// Classification thresholds for |vy| and |vx|.
	VerticalTolerance   float64 `yaml:"vertical_tolerance"`
	HorizontalTolerance float64 `yaml:"horizontal_tolerance"`

	TailwhipDuration time.Duration `yaml:"tailwhip_duration"`
	TailwhipBox      Box           `yaml:"tailwhip_box"`
	GlideTailwhipBox Box           `yaml:"glide_tailwhip_box"`
	SpinBox          Box           `yaml:"spin_box"`

	PoleSwingPeriod     time.Duration `yaml:"pole_swing_period"`
	PoleLaunchSpeed     float64       `yaml:"pole_launch_speed"`
	PoleReleaseDuration time.Duration `yaml:"pole_release_duration"`

	MaxHealth            int           `yaml:"max_health"`
	InvulnerableDuration time.Duration `yaml:"invulnerable_duration"`
	KnockbackX           float64       `yaml:"knockback_x"`
	KnockbackY           float64       `yaml:"knockback_y"`
	KnockbackLock        time.Duration `yaml:"knockback_lock"`

	FadeDuration time.Duration `yaml:"fade_duration"`
	RespawnDelay time.Duration `yaml:"respawn_delay"`

	GroundDrag       float64       `yaml:"ground_drag"`
	FootstepInterval time.Duration `yaml:"footstep_interval"`
}

// DefaultTuning returns the stock movement feel.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed: 260,
		JumpSpeed: 560,

		GlideSpeedFactor:   0.75,
		GlideGravityScale:  -0.02,
		GlideAngle:         20,
		GlideStartDuration: 150 * time.Millisecond,
		AngleResetDuration: 100 * time.Millisecond,

		TurnRadius:   50,
		TurnDuration: 500 * time.Millisecond,
		SpinRadius:   100,
		SpinDuration: time.Second,

		VerticalTolerance:   50,
		HorizontalTolerance: 5,

		TailwhipDuration: 400 * time.Millisecond,
		TailwhipBox:      Box{Width: 72, Height: 40, Damage: 1},
		GlideTailwhipBox: Box{Width: 48, Height: 32, Damage: 1},
		SpinBox:          Box{Width: 64, Height: 64, Damage: 2},

		PoleSwingPeriod:     1200 * time.Millisecond,
		PoleLaunchSpeed:     620,
		PoleReleaseDuration: 200 * time.Millisecond,

		MaxHealth:            3,
		InvulnerableDuration: 250 * time.Millisecond,
		KnockbackX:           220,
		KnockbackY:           260,
		KnockbackLock:        150 * time.Millisecond,

		FadeDuration: 300 * time.Millisecond,
		RespawnDelay: time.Second,

		GroundDrag:       600,
		FootstepInterval: 300 * time.Millisecond,
	}
}

func (t Tuning) glideSpeed() float64 {
	return t.MoveSpeed * t.GlideSpeedFactor
}
