//go:build !audio_stub

package host

import (
	"io"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/hajimehoshi/oto/v2"

	"square/internal/square"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Click tones for picking up and dropping the square.
const (
	pickupFreq  = 880.0
	dropFreq    = 440.0
	clickLength = 0.045 // seconds
	clickVolume = 0.35
)

// Feedback plays a short click when a drag starts or ends.
type Feedback struct {
	ctx   *oto.Context
	ready chan struct{}

	pickup []byte
	drop   []byte
}

// NewFeedback opens the audio device.
func NewFeedback() (*Feedback, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Feedback{
		ctx:    ctx,
		ready:  ready,
		pickup: genClick(pickupFreq, clickLength),
		drop:   genClick(dropFreq, clickLength),
	}, nil
}

// Subscribe hooks the feedback onto drag events.
func (f *Feedback) Subscribe(bus *square.EventBus) {
	bus.Subscribe(square.EventDragStart, func(square.Event) { f.play(f.pickup) })
	bus.Subscribe(square.EventDragEnd, func(square.Event) { f.play(f.drop) })
}

func (f *Feedback) play(samples []byte) {
	if f == nil || len(samples) == 0 {
		return
	}
	select {
	case <-f.ready:
	default:
		return
	}
	go func() {
		player := f.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(clickVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			glog.Warningf("[square] close player: %v", err)
		}
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

// genClick renders a sine burst with a linear attack and exponential decay.
func genClick(freq, seconds float64) []byte {
	frames := int(seconds * SampleRate)
	if frames <= 0 {
		return nil
	}
	attack := frames / 20
	buf := make([]byte, frames*8)
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-t * 60)
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		putStereoF32(buf, i, math.Sin(2*math.Pi*freq*t)*env)
	}
	return buf
}
