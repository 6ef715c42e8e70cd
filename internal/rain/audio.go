package rain

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem plays the procedural explosion boom.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// activeExplosions limits simultaneous explosion sounds to avoid speaker clipping.
var activeExplosions int32
var explosionVariantCounter uint64

var sfxVolume = 0.58

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlayExplosionSound plays a boom whose timbre scales with the explosion
// size factor. No-op until the audio device is ready.
func PlayExplosionSound(sizeFactor float64) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	// Limit simultaneous explosions to 2 — more causes speaker clipping.
	if atomic.LoadInt32(&activeExplosions) >= 2 {
		return
	}
	atomic.AddInt32(&activeExplosions, 1)
	samples := genExplosion(sizeFactor)
	if len(samples) == 0 {
		atomic.AddInt32(&activeExplosions, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&activeExplosions, -1)
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
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
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genExplosion synthesizes the boom: sub pitch-drop, transient crack,
// bandpassed noise body, and a rumble tail. Larger size factors are
// deeper and longer; small ones are snappier.
func genExplosion(sizeFactor float64) []byte {
	norm := clampF((sizeFactor-ExplosionSizeMin)/(ExplosionSizeMax-ExplosionSizeMin), 0, 1)
	dur := 0.26 + 0.64*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := atomic.AddUint64(&explosionVariantCounter, 1) ^
		uint64(time.Now().UnixNano()) ^
		uint64(sizeFactor*4096)
	lp1, lp2 := 0.0, 0.0 // two lowpasses for bandpass body
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subStart := 155.0 - 65.0*norm
		subEnd := 34.0 - 18.0*norm
		if subEnd < 10 {
			subEnd = 10
		}
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.5*norm))
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.8*norm)) * (0.44 + 0.34*norm)

		crack := 0.0
		crackWin := 0.038 - 0.020*norm
		if crackWin < 0.010 {
			crackWin = 0.010
		}
		if p < crackWin {
			crack = lcg(&seed) * (1 - p/crackWin) * (0.88 - 0.28*norm)
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24   // upper lowpass
		lp2 = lp2*0.975 + raw*0.025 // lower lowpass
		body := (lp1 - lp2) * math.Exp(-p*(6.2-2.2*norm)) * (0.30 + 0.17*norm)

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*(3.0-1.5*norm)) * (0.06 + 0.20*norm)

		spark := math.Sin(2*math.Pi*(2400-900*p)*float64(i)/SampleRate) *
			math.Exp(-p*30) * (0.08 * (1.0 - 0.55*norm))

		s := sub + crack + body + rumble + spark
		putStereoF32(buf, i, softSat(s*0.86))
	}
	return buf
}
