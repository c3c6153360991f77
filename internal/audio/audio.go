package audio

import (
	"log"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Processor plays a slow pad whose brightness follows how much of the
// field has escaped.
type Processor struct {
	Stream *portaudio.Stream

	// Output analysis for the level meter
	mono            []float64
	Bass, Mid, High float64

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	mu       sync.Mutex
	escaped  float64
	stepRate float64

	escapedSmooth float64

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		mono:      make([]float64, BufferSize),
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	log.Printf("audio started: %d Hz, %d frames", SampleRate, BufferSize)

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdateField publishes the escaped fraction (0..1) and the tick rate of
// the field. Safe to call from the render loop.
func (a *Processor) UpdateField(escaped, stepRate float64) {
	a.mu.Lock()
	a.escaped = math.Max(0, math.Min(escaped, 1))
	a.stepRate = math.Max(0, stepRate)
	a.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// ProcessAudio fills one stereo block. It runs on the portaudio thread.
func (a *Processor) ProcessAudio(out [][]float32) {
	// G2, Bb2, D3, F3, A3
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}

	a.mu.Lock()
	target, rate := a.escaped, a.stepRate
	a.mu.Unlock()

	// Escapes open the filter, and a fast cadence speeds up the breathing.
	cutoff := 300.0 + 900.0*a.escapedSmooth
	breath := 0.2 + 0.01*rate
	dt := 1.0 / float64(SampleRate)
	vol := 0.252

	n := len(out[0])
	for i := 0; i < n; i++ {
		a.escapedSmooth = a.escapedSmooth*0.9995 + target*0.0005

		sampleL, sampleR := 0.0, 0.0
		for j, f := range freqs {
			g := 1.0 / float64(len(freqs))
			lfo := math.Sin(a.Time*breath + float64(j))
			sampleL += triangle(a.Time*(f*0.999)) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(a.Time*(f*1.001)) * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(sampleL, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(sampleR, cutoff, dt, a.FilterState[1])

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.7
		a.DelayLine[1][a.DelayHead] = mixR * 0.7
		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		if i < len(a.mono) {
			a.mono[i] = (mixL + mixR) * 0.5 * vol
		}

		a.Time += dt
	}

	a.analyze(n)
}

// analyze buckets the spectrum of the last block into smoothed
// bass/mid/high levels in [0, 1].
func (a *Processor) analyze(n int) {
	if n > len(a.mono) {
		n = len(a.mono)
	}
	if n < 2 {
		return
	}

	win := make([]float64, n)
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		win[i] = a.mono[i] * w
	}
	spectrum := fft.FFTReal(win)

	// bin width is SampleRate/n: ~43Hz at 1024 frames
	binHz := float64(SampleRate) / float64(n)
	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 1; i < n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch f := float64(i) * binHz; {
		case f < 200:
			bassSum += mag
		case f < 2000:
			midSum += mag
		default:
			highSum += mag
		}
	}

	a.mu.Lock()
	a.Bass = a.Bass*0.9 + math.Min(bassSum/50.0, 1.0)*0.1
	a.Mid = a.Mid*0.9 + math.Min(midSum/50.0, 1.0)*0.1
	a.High = a.High*0.9 + math.Min(highSum/50.0, 1.0)*0.1
	a.mu.Unlock()
}

// Levels returns the smoothed meter values.
func (a *Processor) Levels() (bass, mid, high float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Bass, a.Mid, a.High
}
