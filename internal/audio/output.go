package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the rate the speaker is opened with.
const DefaultSampleRate = beep.SampleRate(44100)

// Output is the mixing device owned by the worker. Lock must be held while
// mutating a streamer that has already been passed to Play.
type Output interface {
	SampleRate() beep.SampleRate
	Play(streamer beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// Opener initializes an Output. It is called once, on the worker goroutine.
type Opener func() (Output, error)

// SpeakerOpener opens the default system output through beep's speaker.
func SpeakerOpener(sampleRate beep.SampleRate, buffer time.Duration) Opener {
	return func() (Output, error) {
		if err := speaker.Init(sampleRate, sampleRate.N(buffer)); err != nil {
			return nil, fmt.Errorf("init speaker: %w", err)
		}
		return speakerOutput{sampleRate: sampleRate}, nil
	}
}

type speakerOutput struct {
	sampleRate beep.SampleRate
}

func (output speakerOutput) SampleRate() beep.SampleRate {
	return output.sampleRate
}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (speakerOutput) Lock() {
	speaker.Lock()
}

func (speakerOutput) Unlock() {
	speaker.Unlock()
}

func (speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}
