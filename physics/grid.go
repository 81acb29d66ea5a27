package physics

import "math"

// Grid is a row-major tile layer. Zero is empty, any other value is solid and
// may be named in Surfaces.
type Grid struct {
	Width    int
	Height   int
	TileSize int
	Tiles    []int
	Surfaces map[int]string
}

func (g Grid) valid() bool {
	return g.Width > 0 && g.Height > 0 && g.TileSize > 0 && len(g.Tiles) == g.Width*g.Height
}

// At returns the tile value at tile coordinates, 0 outside the grid.
func (g Grid) At(tx, ty int) int {
	if !g.valid() || tx < 0 || ty < 0 || tx >= g.Width || ty >= g.Height {
		return 0
	}
	return g.Tiles[ty*g.Width+tx]
}

// SolidAt reports whether the world point is inside a solid tile.
func (g Grid) SolidAt(x, y float64) bool {
	ts := float64(g.TileSize)
	if ts <= 0 {
		return false
	}
	return g.At(int(math.Floor(x/ts)), int(math.Floor(y/ts))) != 0
}

// SurfaceBelow scans the tile column under x from y downward and returns the
// first solid tile.
func (g Grid) SurfaceBelow(x, y float64) (Surface, bool) {
	if !g.valid() {
		return Surface{}, false
	}
	ts := float64(g.TileSize)
	tx := int(math.Floor(x / ts))
	if tx < 0 || tx >= g.Width {
		return Surface{}, false
	}
	ty := int(math.Floor(y / ts))
	if ty < 0 {
		ty = 0
	}
	for ; ty < g.Height; ty++ {
		v := g.At(tx, ty)
		if v == 0 {
			continue
		}
		return Surface{
			Kind:  g.Surfaces[v],
			Top:   float64(ty) * ts,
			Left:  float64(tx) * ts,
			Right: float64(tx+1) * ts,
		}, true
	}
	return Surface{}, false
}

// WorldSize returns the grid extent in world units.
func (g Grid) WorldSize() (w, h float64) {
	return float64(g.Width * g.TileSize), float64(g.Height * g.TileSize)
}
