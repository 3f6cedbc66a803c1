package app

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/core/model"
	"github.com/juandisay/GaWe/internal/ui/preferences"
)

// QuitBlockedMessage is shown when quitting while a session runs.
const QuitBlockedMessage = "A Pomodoro session is currently running.\nPlease stop the timer before exiting."

// ErrNoMusicFile is returned when music is requested but none is configured.
var ErrNoMusicFile = errors.New("no music file selected")

// Timer is the session engine as seen by the controller.
type Timer interface {
	LoadSession(session model.Session)
	Start()
	Pause()
	Status() (events.TimerUpdate, bool)
	Running() bool
}

// Music is the background audio player as seen by the controller.
type Music interface {
	Play(path string, loop bool) error
	Pause()
	Stop()
	SetVolume(volume float64)
}

// Activity is the idle monitor as seen by the controller.
type Activity interface {
	Configure(config model.ActivityConfig)
}

type musicState int

const (
	musicStopped musicState = iota
	musicPlaying
	musicPaused
)

// Options wires the controller to its collaborators.
type Options struct {
	Timer    Timer
	Music    Music
	Activity Activity
	Settings preferences.Settings
	// Save persists settings changed through the controller; nil skips persistence.
	Save   func(preferences.Settings) error
	Logger *slog.Logger
}

// Controller is the command surface hosts drive: timer control, music and
// activity settings, plus the session-aware rules that tie them together.
type Controller struct {
	mu       sync.Mutex
	timer    Timer
	music    Music
	activity Activity
	settings preferences.Settings
	save     func(preferences.Settings) error
	logger   *slog.Logger
	track    musicState
}

// New creates a controller and applies the initial settings to the
// activity monitor and music player.
func New(options Options) *Controller {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	controller := &Controller{
		timer:    options.Timer,
		music:    options.Music,
		activity: options.Activity,
		settings: options.Settings,
		save:     options.Save,
		logger:   options.Logger,
	}
	controller.activity.Configure(controller.settings.ActivityConfig())
	controller.music.SetVolume(controller.settings.MusicVolume)
	return controller
}

// LoadSession hands a session to the timer, replacing any current one.
func (controller *Controller) LoadSession(session model.Session) {
	controller.timer.LoadSession(session)
	controller.logger.Info("session loaded", "session", session.ID, "name", session.Name, "tasks", len(session.Tasks))
}

// StartTimer starts or resumes the timer. With autoplay on, the configured
// track starts, or resumes if it was paused along with the timer.
func (controller *Controller) StartTimer() {
	controller.timer.Start()

	controller.mu.Lock()
	defer controller.mu.Unlock()
	music := controller.settings.MusicConfig()
	if !music.AutoPlay || music.FilePath == "" || !controller.timer.Running() {
		return
	}
	switch controller.track {
	case musicStopped:
		if err := controller.music.Play(music.FilePath, music.Loop); err != nil {
			controller.logger.Warn("autoplay failed", "path", music.FilePath, "error", err)
			return
		}
		controller.track = musicPlaying
	case musicPaused:
		controller.music.Pause()
		controller.track = musicPlaying
	}
}

// PauseTimer pauses the timer and any playing background track.
func (controller *Controller) PauseTimer() {
	controller.timer.Pause()

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.track == musicPlaying {
		controller.music.Pause()
		controller.track = musicPaused
	}
}

// TimerStatus returns the timer snapshot; false when no session is loaded.
func (controller *Controller) TimerStatus() (events.TimerUpdate, bool) {
	return controller.timer.Status()
}

// SetActivityMonitoring updates and persists the idle warning settings.
func (controller *Controller) SetActivityMonitoring(enabled bool, thresholdSeconds uint64) {
	controller.mu.Lock()
	controller.settings.ActivityEnabled = enabled
	controller.settings.ActivityThresholdSeconds = thresholdSeconds
	controller.activity.Configure(controller.settings.ActivityConfig())
	settings := controller.settings
	controller.mu.Unlock()

	controller.persist(settings)
}

// PlayMusic replaces the background track.
func (controller *Controller) PlayMusic(path string, loop bool) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if path == "" {
		return ErrNoMusicFile
	}
	if err := controller.music.Play(path, loop); err != nil {
		return err
	}
	controller.track = musicPlaying
	return nil
}

// PlayConfiguredMusic plays the track from settings.
func (controller *Controller) PlayConfiguredMusic() error {
	controller.mu.Lock()
	music := controller.settings.MusicConfig()
	controller.mu.Unlock()
	return controller.PlayMusic(music.FilePath, music.Loop)
}

// PauseMusic toggles the background track between paused and playing.
func (controller *Controller) PauseMusic() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.music.Pause()
	switch controller.track {
	case musicPlaying:
		controller.track = musicPaused
	case musicPaused:
		controller.track = musicPlaying
	}
}

// ToggleMusic plays the configured track when none is loaded, otherwise
// toggles pause.
func (controller *Controller) ToggleMusic() error {
	controller.mu.Lock()
	stopped := controller.track == musicStopped
	controller.mu.Unlock()
	if stopped {
		return controller.PlayConfiguredMusic()
	}
	controller.PauseMusic()
	return nil
}

// StopMusic releases the background track.
func (controller *Controller) StopMusic() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.music.Stop()
	controller.track = musicStopped
}

// MusicPlaying reports whether a background track is audible.
func (controller *Controller) MusicPlaying() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.track == musicPlaying
}

// HasMusic reports whether a background track is loaded, playing or paused.
func (controller *Controller) HasMusic() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.track != musicStopped
}

// SetVolume updates and persists the background volume.
func (controller *Controller) SetVolume(volume float64) {
	volume = clampVolume(volume)

	controller.mu.Lock()
	controller.settings.MusicVolume = volume
	controller.music.SetVolume(volume)
	settings := controller.settings
	controller.mu.Unlock()

	controller.persist(settings)
}

// Settings returns the current settings.
func (controller *Controller) Settings() preferences.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.settings
}

// ApplySettings replaces all settings, pushes them to the collaborators and
// persists them.
func (controller *Controller) ApplySettings(settings preferences.Settings) {
	settings.MusicVolume = clampVolume(settings.MusicVolume)

	controller.mu.Lock()
	controller.settings = settings
	controller.activity.Configure(settings.ActivityConfig())
	controller.music.SetVolume(settings.MusicVolume)
	controller.mu.Unlock()

	controller.persist(settings)
}

// HandleEvent reacts to engine events. A finished session stops the music.
func (controller *Controller) HandleEvent(event events.Event) {
	if _, ok := event.(events.SessionFinished); ok {
		controller.StopMusic()
	}
}

// QuitAllowed reports whether the process may exit. While a session is
// running it returns false and the message to show.
func (controller *Controller) QuitAllowed() (bool, string) {
	if controller.timer.Running() {
		return false, QuitBlockedMessage
	}
	return true, ""
}

func (controller *Controller) persist(settings preferences.Settings) {
	if controller.save == nil {
		return
	}
	if err := controller.save(settings); err != nil {
		controller.logger.Warn("failed to save settings", "error", err)
	}
}

func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
