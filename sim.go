package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/glider/entity"
	"github.com/milk9111/glider/logger"
	"github.com/milk9111/glider/player"
)

var errBadScript = errors.New("invalid input script")

// scriptStep holds one input for a number of frames. Edge presses fire on
// the first frame of the step only.
type scriptStep struct {
	input  player.Input
	frames int
}

// parseScript reads comma separated steps of "+"-joined keys with an
// optional ":frames" count, e.g. "right:60,jump,right+attack:10,idle:5".
func parseScript(s string) ([]scriptStep, error) {
	var steps []scriptStep
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		keys, count, hasCount := strings.Cut(raw, ":")
		step := scriptStep{frames: 1}
		if hasCount {
			n, err := strconv.Atoi(count)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: bad frame count in %q", errBadScript, raw)
			}
			step.frames = n
		}
		for _, key := range strings.Split(keys, "+") {
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "left":
				step.input.MoveX = -1
			case "right":
				step.input.MoveX = 1
			case "jump":
				step.input.JumpPressed = true
			case "attack":
				step.input.AttackPressed = true
			case "spin":
				step.input.SpinPressed = true
			case "idle":
			default:
				return nil, fmt.Errorf("%w: unknown key %q", errBadScript, key)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// expand turns steps into one input per frame, padding with idle frames.
func expand(steps []scriptStep, frames int) []player.Input {
	out := make([]player.Input, 0, frames)
	for _, st := range steps {
		for i := 0; i < st.frames && len(out) < frames; i++ {
			in := st.input
			if i > 0 {
				in.JumpPressed, in.AttackPressed, in.SpinPressed = false, false, false
			}
			out = append(out, in)
		}
	}
	for len(out) < frames {
		out = append(out, player.Input{})
	}
	return out
}

// runSim plays the inputs headlessly and traces transitions and events to w.
// It stops early when the level is completed.
func runSim(w io.Writer, sess *session, inputs []player.Input) {
	sess.onTransition = func(frame int, from, to player.State) {
		fmt.Fprintf(w, "%5d  %s -> %s\n", frame, from, to)
	}
	sess.onEvent = func(frame int, e entity.Event) {
		fmt.Fprintf(w, "%5d  event %s at %.0f,%.0f value=%d\n", frame, e.Kind, e.X, e.Y, e.Value)
	}
	for _, in := range inputs {
		if sess.finished() {
			break
		}
		sess.step(in)
	}

	p := sess.world.Player()
	x, y := p.Body().Position()
	fmt.Fprintf(w, "frames: %d  state: %s  score: %d  health: %d/%d  deaths: %d  pos: %.1f,%.1f  time: %s\n",
		sess.frame, p.State, p.Score, p.Health.Current(), p.Health.Max(), sess.deaths, x, y, formatElapsed(sess.world.Elapsed()))
	if res := sess.result; res != nil {
		fmt.Fprintf(w, "level complete  new record: %t\n", res.NewRecord)
	}
}

func newSimCmd(f *flags) *cobra.Command {
	var (
		frames int
		script string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the level headlessly from an input script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}
			steps, err := parseScript(script)
			if err != nil {
				return err
			}
			cfg, _, err := f.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			var svc *services
			if save {
				svc = openServices(cfg)
				defer svc.Close()
			}
			sess, err := newSession(cfg.Level, cfg.Player.Tuning(), svc, nil)
			if err != nil {
				return err
			}
			runSim(cmd.OutOrStdout(), sess, expand(steps, frames))
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 600, "number of frames to simulate")
	cmd.Flags().StringVar(&script, "script", "", "input script, e.g. right:60,jump,right+attack:10")
	cmd.Flags().BoolVar(&save, "save", false, "record high scores and run history")
	return cmd
}
