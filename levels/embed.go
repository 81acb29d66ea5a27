// Package levels holds the embedded level data and its decoding.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/glider/physics"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is configured.
const DefaultLevel = "meadow.json"

var (
	ErrInvalidSize  = errors.New("levels: invalid dimensions")
	ErrInvalidLayer = errors.New("levels: layer size does not match dimensions")
	ErrNoSpawn      = errors.New("levels: no player_spawn entity")
)

// Entity types placed in level files.
const (
	TypePlayerSpawn = "player_spawn"
	TypeMuncher     = "muncher"
	TypeGlizzard    = "glizzard"
	TypePole        = "pole"
	TypeTeleporter  = "teleporter"
	TypeHazard      = "hazard"
	TypeGoal        = "goal"
)

type Level struct {
	Name      string            `json:"name"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	TileSize  int               `json:"tile_size"`
	Layers    [][]int           `json:"layers"`
	LayerMeta []LayerMeta       `json:"layer_meta,omitempty"`
	Surfaces  map[string]string `json:"surfaces,omitempty"`
	Entities  []Entity          `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity is a placed object centered on (X, Y) in world pixels.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Load reads a level by name, preferring a file on disk over the embedded copy.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return Parse(data)
	}
	data, err := fs.ReadFile(LevelsFS, path.Base(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// List returns the embedded level names.
func List() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 32
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles", ErrInvalidLayer, i, len(layer))
		}
	}
	return &lvl, nil
}

func (l *Level) hasPhysics(layer int) bool {
	// Levels without metadata collide on every layer.
	if len(l.LayerMeta) == 0 {
		return true
	}
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// Grid flattens the physics layers into one collision grid. Where layers
// overlap the top-most solid tile wins.
func (l *Level) Grid() physics.Grid {
	g := physics.Grid{
		Width:    l.Width,
		Height:   l.Height,
		TileSize: l.TileSize,
		Tiles:    make([]int, l.Width*l.Height),
		Surfaces: map[int]string{},
	}
	for i, layer := range l.Layers {
		if !l.hasPhysics(i) {
			continue
		}
		for idx, v := range layer {
			if v != 0 {
				g.Tiles[idx] = v
			}
		}
	}
	for k, kind := range l.Surfaces {
		v, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		g.Surfaces[v] = kind
	}
	return g
}

// Spawn returns the player spawn point.
func (l *Level) Spawn() (x, y float64, err error) {
	for _, e := range l.Entities {
		if e.Type == TypePlayerSpawn {
			return float64(e.X), float64(e.Y), nil
		}
	}
	return 0, 0, ErrNoSpawn
}

// LowerBound is the world y below which anything has fallen out.
func (l *Level) LowerBound() float64 {
	return float64(l.Height * l.TileSize)
}

// EntitiesOf returns the entities of one type in file order.
func (l *Level) EntitiesOf(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Float reads a numeric prop, falling back to def.
func (e Entity) Float(name string, def float64) float64 {
	switch v := e.Props[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func (e Entity) Int(name string, def int) int {
	switch v := e.Props[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func (e Entity) String(name string, def string) string {
	if v, ok := e.Props[name].(string); ok {
		return v
	}
	return def
}
