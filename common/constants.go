package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TileSize = 32

	// Gravity is the world gravity in pixels per second squared.
	Gravity = 1400.0

	// TPS is the fixed simulation rate.
	TPS = 60
)
