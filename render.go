package main

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/component"
	"github.com/milk9111/glider/enemy"
	"github.com/milk9111/glider/entity"
	"github.com/milk9111/glider/levels"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/player"
)

var surfaceColors = map[string]color.Color{
	"grass": colornames.Olivedrab,
	"stone": colornames.Slategray,
	"wood":  colornames.Sienna,
}

// renderer draws the world with flat shapes.
type renderer struct {
	grid       physics.Grid
	pixel      *ebiten.Image
	face       ebtext.Face
	layerColor color.Color
}

func newRenderer(lvl *levels.Level) *renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	r := &renderer{
		grid:       lvl.Grid(),
		pixel:      pixel,
		face:       ebtext.NewGoXFace(basicfont.Face7x13),
		layerColor: colornames.Steelblue,
	}
	for _, meta := range lvl.LayerMeta {
		if meta.Physics && meta.Color != "" {
			r.layerColor = parseHexColor(meta.Color)
			break
		}
	}
	return r
}

// parseHexColor parses #rrggbb, falling back to steel blue.
func parseHexColor(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return colornames.Steelblue
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return colornames.Steelblue
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// camera returns the top-left world point of the view, following the
// player and clamped to the level.
func (r *renderer) camera(w *entity.World) (float64, float64) {
	px, py := w.Player().Body().Position()
	ww, wh := r.grid.WorldSize()
	cx := common.Clamp(px-common.BaseWidth/2, 0, max(0, ww-common.BaseWidth))
	cy := common.Clamp(py-common.BaseHeight/2, 0, max(0, wh-common.BaseHeight))
	return cx, cy
}

func (r *renderer) draw(screen *ebiten.Image, s *session, debug bool) {
	screen.Fill(colornames.Lightskyblue)
	w := s.world
	camX, camY := r.camera(w)

	r.drawTiles(screen, camX, camY)

	for _, h := range w.Hazards() {
		r.fillRect(screen, h.Area, camX, camY, color.RGBA{R: 255, A: 96})
		r.strokeRect(screen, h.Area, camX, camY, color.RGBA{R: 255, A: 220})
	}
	for _, t := range w.Teleporters() {
		r.fillRect(screen, t.Area, camX, camY, colornames.Mediumpurple)
	}
	if g := w.Goal(); g != nil {
		r.fillRect(screen, g.Area, camX, camY, colornames.Gold)
	}
	for _, p := range w.Poles() {
		ex, ey := common.Rotate(0, p.Length, p.Angle())
		vector.StrokeLine(screen, float32(p.X-camX), float32(p.Y-camY), float32(p.X+ex-camX), float32(p.Y+ey-camY), 3, colornames.Burlywood, true)
		vector.DrawFilledCircle(screen, float32(p.X-camX), float32(p.Y-camY), 5, colornames.Saddlebrown, true)
	}

	for _, a := range w.Actors() {
		if e, ok := a.(*enemy.Controller); ok {
			r.drawActor(screen, a, camX, camY, enemyColor(e.Kind()), 1)
		}
	}
	p := w.Player()
	r.drawActor(screen, p, camX, camY, colornames.Darkorange, p.Alpha)

	if debug {
		r.drawDebug(screen, s, camX, camY)
	}
	r.drawHUD(screen, s)
}

func enemyColor(k enemy.Kind) color.Color {
	if k == enemy.KindGlizzard {
		return colornames.Seagreen
	}
	return colornames.Crimson
}

func (r *renderer) drawTiles(screen *ebiten.Image, camX, camY float64) {
	ts := float64(r.grid.TileSize)
	if ts <= 0 {
		return
	}
	x0, y0 := int(camX/ts), int(camY/ts)
	x1, y1 := int((camX+common.BaseWidth)/ts)+1, int((camY+common.BaseHeight)/ts)+1
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			v := r.grid.At(tx, ty)
			if v == 0 {
				continue
			}
			col, ok := surfaceColors[r.grid.Surfaces[v]]
			if !ok {
				col = r.layerColor
			}
			vector.FillRect(screen, float32(float64(tx)*ts-camX), float32(float64(ty)*ts-camY), float32(ts), float32(ts), col, false)
		}
	}
}

// drawActor draws a body as a rotated rectangle with a notch on its facing side.
func (r *renderer) drawActor(screen *ebiten.Image, a entity.Controller, camX, camY float64, col color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	b := a.Body()
	x, y := b.Position()
	w, h := b.Size()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(common.DegToRad(b.Angle()))
	op.GeoM.Translate(x-camX, y-camY)
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(r.pixel, op)

	facing := 1.0
	switch c := a.(type) {
	case *player.Controller:
		if !c.FacingRight {
			facing = -1
		}
	case *enemy.Controller:
		facing = c.Facing()
	}
	ex, ey := common.Rotate(facing*w/4, -h/4, b.Angle())
	vector.DrawFilledCircle(screen, float32(x+ex-camX), float32(y+ey-camY), 3, color.White, true)
}

func (r *renderer) fillRect(screen *ebiten.Image, rect common.Rect, camX, camY float64, col color.Color) {
	vector.FillRect(screen, float32(rect.X-camX), float32(rect.Y-camY), float32(rect.Width), float32(rect.Height), col, false)
}

func (r *renderer) strokeRect(screen *ebiten.Image, rect common.Rect, camX, camY float64, col color.Color) {
	vector.StrokeRect(screen, float32(rect.X-camX), float32(rect.Y-camY), float32(rect.Width), float32(rect.Height), 1, col, false)
}

func (r *renderer) drawDebug(screen *ebiten.Image, s *session, camX, camY float64) {
	w := s.world
	for _, a := range w.Actors() {
		r.strokeRect(screen, entity.Hurtbox(a), camX, camY, colornames.Lime)
		if box := a.DamageBox(); box.Active() {
			col := colornames.Red
			if box.Owner == component.FactionPlayer {
				col = colornames.Yellow
			}
			r.strokeRect(screen, box.Rect(), camX, camY, col)
		}
	}
	for _, hit := range w.RecentHits() {
		r.fillRect(screen, hit.Hurt, camX, camY, color.RGBA{R: 255, G: 255, A: 80})
	}
	for _, p := range w.Poles() {
		r.strokeRect(screen, p.Rect(), camX, camY, colornames.Cyan)
	}

	p := w.Player()
	x, y := p.Body().Position()
	vx, vy := p.Body().Velocity()
	bl := p.Body().Blocked()
	msg := fmt.Sprintf(
		"TPS %.1f  FPS %.1f\nstate %s  anim %s\npos %.1f, %.1f  vel %.1f, %.1f  angle %.1f\nblocked up=%t down=%t left=%t right=%t\nmove disabled=%t  tailwhip=%t",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		p.State, s.animation,
		x, y, vx, vy, p.Body().Angle(),
		bl.Up, bl.Down, bl.Left, bl.Right,
		p.DisableMovement, p.Tailwhipping(),
	)
	ebitenutil.DebugPrintAt(screen, msg, 8, common.BaseHeight-90)
}

func (r *renderer) drawHUD(screen *ebiten.Image, s *session) {
	p := s.world.Player()
	hud := fmt.Sprintf("SCORE %d   HEALTH %d/%d   TIME %s", p.Score, p.Health.Current(), p.Health.Max(), formatElapsed(s.world.Elapsed()))
	r.text(screen, hud, 16, 16, color.White)

	if res := s.result; res != nil {
		msg := fmt.Sprintf("LEVEL COMPLETE  score %d  time %s", res.Score, formatElapsed(res.Elapsed))
		if res.NewRecord {
			msg += "  NEW RECORD!"
		}
		r.text(screen, msg, common.BaseWidth/2-float64(len(msg))*7/2, common.BaseHeight/2-20, colornames.Gold)
		r.text(screen, "press enter to play again", common.BaseWidth/2-25*7/2, common.BaseHeight/2, color.White)
	}
}

func (r *renderer) text(screen *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	ebtext.Draw(screen, s, r.face, op)
}

// formatElapsed renders mm:ss.mmm.
func formatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
