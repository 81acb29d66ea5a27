package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/glider/player"
)

// SampleRate is the rate synthesized clips are rendered at.
const SampleRate = 44100

// Mixer plays player cues. Clips are synthesized on first use and cached.
type Mixer struct {
	ctx      *audio.Context
	settings *Settings
	log      *zap.Logger

	mu    sync.Mutex
	clips map[string][]byte
}

// NewMixer creates a mixer. A nil context renders clips but plays nothing,
// which is how the headless sim runs.
func NewMixer(ctx *audio.Context, settings *Settings, log *zap.Logger) *Mixer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mixer{
		ctx:      ctx,
		settings: settings,
		log:      log,
		clips:    map[string][]byte{},
	}
}

// Play starts the clip for cue. Unknown cues and silent settings are no-ops.
func (m *Mixer) Play(cue player.Cue) {
	pcm := m.clip(cue)
	if pcm == nil || m.ctx == nil {
		return
	}
	vol := m.settings.Volume()
	if vol <= 0 {
		return
	}
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(vol)
	p.Play()
}

func clipKey(cue player.Cue) string {
	if cue.Surface == "" {
		return string(cue.Kind)
	}
	return string(cue.Kind) + "/" + cue.Surface
}

func (m *Mixer) clip(cue player.Cue) []byte {
	key := clipKey(cue)
	m.mu.Lock()
	defer m.mu.Unlock()
	if pcm, ok := m.clips[key]; ok {
		return pcm
	}
	pcm := Synthesize(cue)
	if pcm == nil {
		m.log.Debug("no clip for cue", zap.String("cue", key))
	}
	m.clips[key] = pcm
	return pcm
}

// voice describes a short synthesized sound.
type voice struct {
	length  time.Duration
	startHz float64
	endHz   float64
	noise   float64 // 0 pure tone, 1 pure noise
	square  bool
	decay   float64 // exponential decay rate per second
	amp     float64
	seed    uint64
}

var surfaceVoices = map[string]voice{
	"grass": {length: 45 * time.Millisecond, startHz: 180, endHz: 120, noise: 0.85, decay: 60, amp: 0.5, seed: 1},
	"stone": {length: 30 * time.Millisecond, startHz: 900, endHz: 600, noise: 0.4, decay: 120, amp: 0.5, seed: 2},
	"wood":  {length: 50 * time.Millisecond, startHz: 260, endHz: 200, noise: 0.2, decay: 70, amp: 0.6, seed: 3},
}

// Synthesize renders cue as 16-bit little-endian stereo PCM at SampleRate.
// Surface cues need a known surface.
func Synthesize(cue player.Cue) []byte {
	var v voice
	switch cue.Kind {
	case player.CueFootstep, player.CueLanding:
		sv, ok := surfaceVoices[cue.Surface]
		if !ok {
			return nil
		}
		v = sv
		if cue.Kind == player.CueLanding {
			v.length *= 2
			v.startHz *= 0.7
			v.endHz *= 0.6
			v.decay *= 0.6
			v.amp = math.Min(1, v.amp*1.4)
			v.seed += 100
		}
	case player.CueJump:
		v = voice{length: 90 * time.Millisecond, startHz: 320, endHz: 640, decay: 18, amp: 0.45}
	case player.CueTailwhip:
		v = voice{length: 120 * time.Millisecond, startHz: 900, endHz: 300, noise: 0.7, decay: 20, amp: 0.5, seed: 7}
	case player.CueHurt:
		v = voice{length: 160 * time.Millisecond, startHz: 420, endHz: 140, square: true, decay: 12, amp: 0.35}
	default:
		return nil
	}
	return render(v)
}

func render(v voice) []byte {
	n := int(v.length.Seconds() * SampleRate)
	out := make([]byte, n*4)
	rng := rand.New(rand.NewPCG(v.seed, v.seed^0x9e3779b97f4a7c15))
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		frac := float64(i) / float64(n)
		hz := v.startHz + (v.endHz-v.startHz)*frac
		phase += 2 * math.Pi * hz / SampleRate

		tone := math.Sin(phase)
		if v.square {
			tone = math.Copysign(1, tone)
		}
		s := tone*(1-v.noise) + (rng.Float64()*2-1)*v.noise
		s *= v.amp * math.Exp(-v.decay*t)
		// Short fade out so clips end on silence.
		if tail := float64(n-1-i) / float64(n); tail < 0.1 {
			s *= tail / 0.1
		}

		sample := int16(math.Round(s * math.MaxInt16))
		lo, hi := byte(sample), byte(uint16(sample)>>8)
		out[i*4], out[i*4+1] = lo, hi
		out[i*4+2], out[i*4+3] = lo, hi
	}
	return out
}
