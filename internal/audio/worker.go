package audio

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrWorkerClosed is returned when a command is submitted after Close.
var ErrWorkerClosed = errors.New("audio worker closed")

const (
	// DefaultVolume is the background volume before SetVolume is called.
	DefaultVolume = 0.5
	// DefaultCueVolume is the fixed level cues play at.
	DefaultCueVolume = 0.8

	defaultQueueSize = 64
)

// Options configures a Worker.
type Options struct {
	// Open initializes the output device on the worker goroutine.
	Open Opener
	// Volume is the initial background volume; DefaultVolume when zero.
	Volume    float64
	CueVolume float64
	Cue       CueLocator
	QueueSize int
	Logger    *slog.Logger
	// OnCommand, when set, is called after each command has been handled.
	OnCommand func(Command)
}

// Worker owns the audio device and plays commands in submission order.
// All methods are safe for concurrent use and never wait for playback.
type Worker struct {
	mu       sync.RWMutex
	closed   bool
	commands chan Command
	done     chan struct{}
	options  Options
}

// Start launches the worker goroutine. The device is opened there, so a slow
// or failing device never delays the caller.
func Start(options Options) *Worker {
	if options.Open == nil {
		options.Open = SpeakerOpener(DefaultSampleRate, 100*time.Millisecond)
	}
	if options.Volume == 0 {
		options.Volume = DefaultVolume
	}
	if options.CueVolume == 0 {
		options.CueVolume = DefaultCueVolume
	}
	if options.Cue.RelativePath == "" {
		options.Cue = DefaultCueLocator()
	}
	if options.QueueSize <= 0 {
		options.QueueSize = defaultQueueSize
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	options.Volume = clampVolume(options.Volume)
	options.CueVolume = clampVolume(options.CueVolume)

	worker := &Worker{
		commands: make(chan Command, options.QueueSize),
		done:     make(chan struct{}),
		options:  options,
	}
	go worker.run()
	return worker
}

// Play replaces the background track. The error only reports that the
// command could not be queued; playback failures are logged by the worker.
func (worker *Worker) Play(path string, loop bool) error {
	return worker.Submit(PlayFile{Path: path, Loop: loop})
}

// PlayCue plays the alert sound.
func (worker *Worker) PlayCue() {
	_ = worker.Submit(PlayCue{})
}

// Pause toggles the background track between paused and playing.
func (worker *Worker) Pause() {
	_ = worker.Submit(PauseToggle{})
}

// Stop releases the background track.
func (worker *Worker) Stop() {
	_ = worker.Submit(Stop{})
}

// SetVolume sets the background volume, clamped to 0..1.
func (worker *Worker) SetVolume(volume float64) {
	_ = worker.Submit(SetVolume{Volume: clampVolume(volume)})
}

// Submit queues a command.
func (worker *Worker) Submit(command Command) error {
	worker.mu.RLock()
	defer worker.mu.RUnlock()
	if worker.closed {
		return ErrWorkerClosed
	}
	worker.commands <- command
	return nil
}

// Close stops accepting commands, lets queued ones finish and releases the device.
func (worker *Worker) Close() {
	worker.mu.Lock()
	if !worker.closed {
		worker.closed = true
		close(worker.commands)
	}
	worker.mu.Unlock()
	<-worker.done
}

func (worker *Worker) run() {
	defer close(worker.done)

	output, err := worker.options.Open()
	if err != nil {
		worker.options.Logger.Error("audio output unavailable, audio disabled", "error", err)
		for range worker.commands {
		}
		return
	}

	player := newPlayback(output, worker.options)
	defer player.close()
	for command := range worker.commands {
		player.handle(command)
		if worker.options.OnCommand != nil {
			worker.options.OnCommand(command)
		}
	}
}
