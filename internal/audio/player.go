package audio

import (
	"log/slog"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// playback holds the state owned by the worker goroutine: the output device
// and at most one background track.
type playback struct {
	output    Output
	current   *track
	volume    float64
	cueVolume float64
	locator   CueLocator
	logger    *slog.Logger
}

type track struct {
	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	gain   *effects.Volume
}

func newPlayback(output Output, options Options) *playback {
	return &playback{
		output:    output,
		volume:    options.Volume,
		cueVolume: options.CueVolume,
		locator:   options.Cue,
		logger:    options.Logger,
	}
}

func (player *playback) handle(command Command) {
	switch command := command.(type) {
	case PlayFile:
		player.playFile(command.Path, command.Loop)
	case PlayCue:
		player.playCue()
	case PauseToggle:
		player.togglePause()
	case Stop:
		player.stopCurrent()
	case SetVolume:
		player.setVolume(command.Volume)
	}
}

func (player *playback) playFile(path string, loop bool) {
	player.stopCurrent()

	stream, format, err := decodeFile(path)
	if err != nil {
		player.logger.Debug("background track unavailable", "path", path, "error", err)
		return
	}

	var source beep.Streamer = stream
	if loop {
		source = beep.Loop(-1, stream)
	}
	gain := newVolume(resample(format.SampleRate, player.output.SampleRate(), source), player.volume)
	ctrl := &beep.Ctrl{Streamer: gain}
	player.output.Play(ctrl)
	player.current = &track{stream: stream, ctrl: ctrl, gain: gain}
	player.logger.Debug("background track started", "path", path, "loop", loop)
}

func (player *playback) playCue() {
	if path, ok := player.locator.Resolve(); ok {
		stream, format, err := decodeFile(path)
		if err == nil {
			source := beep.Seq(
				resample(format.SampleRate, player.output.SampleRate(), stream),
				beep.Callback(func() { _ = stream.Close() }),
			)
			player.output.Play(newVolume(source, player.cueVolume))
			return
		}
		player.logger.Debug("cue asset undecodable, using synthesized beep", "path", path, "error", err)
	}
	player.output.Play(newVolume(synthesizeCue(player.output.SampleRate()), player.cueVolume))
}

func (player *playback) togglePause() {
	if player.current == nil {
		return
	}
	player.output.Lock()
	player.current.ctrl.Paused = !player.current.ctrl.Paused
	player.output.Unlock()
}

func (player *playback) stopCurrent() {
	if player.current == nil {
		return
	}
	player.output.Lock()
	player.current.ctrl.Streamer = nil
	player.output.Unlock()
	_ = player.current.stream.Close()
	player.current = nil
}

func (player *playback) setVolume(level float64) {
	player.volume = clampVolume(level)
	if player.current == nil {
		return
	}
	player.output.Lock()
	setLevel(player.current.gain, player.volume)
	player.output.Unlock()
}

func (player *playback) close() {
	player.stopCurrent()
	player.output.Close()
}
