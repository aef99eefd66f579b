package game

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"raft/internal/config"
	"raft/internal/scene"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Audio plays the looping ocean bed and the menu click. Methods do nothing
// until the device is ready, and a nil *Audio is silent.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}
	ocean oto.Player
	log   *slog.Logger

	oceanVolume float64
	clickVolume float64
}

// NewAudio opens the output device.
func NewAudio(cfg config.Audio, log *slog.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Audio{
		ctx:         ctx,
		ready:       ready,
		log:         log,
		oceanVolume: cfg.OceanVolume,
		clickVolume: cfg.ClickVolume,
	}, nil
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// SetVolumes applies new levels, including to the playing ocean loop.
func (a *Audio) SetVolumes(ocean, click float64) {
	if a == nil {
		return
	}
	a.oceanVolume = clampF(ocean, 0, 1)
	a.clickVolume = clampF(click, 0, 1)
	if a.ocean != nil {
		a.ocean.SetVolume(a.oceanVolume)
	}
}

// Click plays the menu click.
func (a *Audio) Click() {
	if !a.isReady() {
		return
	}
	samples := genClick()
	volume := a.clickVolume
	go func() {
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// PlayOcean starts or resumes the ocean loop.
func (a *Audio) PlayOcean() {
	if !a.isReady() {
		return
	}
	if a.ocean == nil {
		a.ocean = a.ctx.NewPlayer(&oceanReader{seed: uint64(time.Now().UnixNano())})
	}
	a.ocean.SetVolume(a.oceanVolume)
	a.ocean.Play()
}

// PauseOcean pauses the loop where it is.
func (a *Audio) PauseOcean() {
	if a == nil || a.ocean == nil {
		return
	}
	a.ocean.Pause()
}

// Follow runs the ocean while playing and pauses it in the menu.
func (a *Audio) Follow(tr scene.Transition) {
	if !tr.Changed() {
		return
	}
	if tr.To == scene.ModePlaying {
		a.PlayOcean()
	} else {
		a.PauseOcean()
	}
}

// Close stops playback.
func (a *Audio) Close() {
	if a == nil || a.ocean == nil {
		return
	}
	if err := a.ocean.Close(); err != nil {
		a.log.Warn("close ocean player", "err", err)
	}
	a.ocean = nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	putStereoF32LR(buf, i, sample, sample)
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// genClick: crisp click + brief high tone.
func genClick() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// oceanReader streams an endless surf bed: two low-passed noise channels
// swelling on slow, detuned cycles so left and right never line up.
type oceanReader struct {
	t      float64
	seed   uint64
	lp, rp float64
	lp2    float64
	rp2    float64
}

// Swell periods in seconds.
const (
	swellLeft  = 7.3
	swellRight = 9.1
)

func (o *oceanReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		o.t += 1.0 / SampleRate
		l, r := o.sample()
		putStereoF32LR(p, i, l, r)
	}
	return frames * 8, nil
}

func (o *oceanReader) sample() (left, right float64) {
	swell := func(period, phase float64) float64 {
		s := 0.5 + 0.5*math.Sin(2*math.Pi*o.t/period+phase)
		return 0.25 + 0.75*s*s
	}
	// Two one-pole stages per channel give a soft rumble with a hiss on top.
	o.lp += 0.02 * (lcg(&o.seed) - o.lp)
	o.lp2 += 0.2 * (o.lp - o.lp2)
	o.rp += 0.02 * (lcg(&o.seed) - o.rp)
	o.rp2 += 0.2 * (o.rp - o.rp2)

	left = softSat(o.lp2 * 6 * swell(swellLeft, 0))
	right = softSat(o.rp2 * 6 * swell(swellRight, 1.7))
	return left, right
}
