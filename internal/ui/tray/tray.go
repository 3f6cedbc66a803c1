package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/juandisay/GaWe/internal/core/events"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnLoadSession    func()
	OnToggleTimer    func()
	OnToggleMusic    func()
	OnStopMusic      func()
	OnToggleActivity func()
	OnPreferences    func()
	OnQuit           func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	statusItem   *fyne.MenuItem
	loadItem     *fyne.MenuItem
	timerItem    *fyne.MenuItem
	musicItem    *fyne.MenuItem
	stopItem     *fyne.MenuItem
	activityItem *fyne.MenuItem
	prefsItem    *fyne.MenuItem
	quitItem     *fyne.MenuItem
	callbacks    Callbacks
	running      bool
	loaded       bool
	musicPlaying bool
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu in memory only.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("No session loaded", nil)
	manager.statusItem.Disabled = true

	manager.loadItem = fyne.NewMenuItem("Load session...", func() { invoke(manager.callbacks.OnLoadSession) })
	manager.timerItem = fyne.NewMenuItem("Start", func() { invoke(manager.callbacks.OnToggleTimer) })
	manager.timerItem.Disabled = true

	manager.musicItem = fyne.NewMenuItem("Play music", func() { invoke(manager.callbacks.OnToggleMusic) })
	manager.stopItem = fyne.NewMenuItem("Stop music", func() { invoke(manager.callbacks.OnStopMusic) })
	manager.stopItem.Disabled = true
	manager.activityItem = fyne.NewMenuItem("Activity warnings", func() { invoke(manager.callbacks.OnToggleActivity) })
	manager.prefsItem = fyne.NewMenuItem("Preferences", func() { invoke(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line and timer item from a timer snapshot.
func (manager *Manager) SetStatus(update events.TimerUpdate, loaded bool) {
	manager.loaded = loaded
	manager.running = loaded && update.IsRunning
	manager.statusItem.Label = StatusLabel(update, loaded)
	manager.timerItem.Disabled = !loaded
	if manager.running {
		manager.timerItem.Label = "Pause"
	} else {
		manager.timerItem.Label = "Start"
	}
	manager.refreshMenu()
}

// SetMusicPlaying updates the music items.
func (manager *Manager) SetMusicPlaying(playing, hasTrack bool) {
	manager.musicPlaying = playing
	if playing {
		manager.musicItem.Label = "Pause music"
	} else {
		manager.musicItem.Label = "Play music"
	}
	manager.stopItem.Disabled = !hasTrack
	manager.refreshMenu()
}

// SetActivityEnabled ticks the activity warnings item.
func (manager *Manager) SetActivityEnabled(enabled bool) {
	manager.activityItem.Checked = enabled
	manager.refreshMenu()
}

// Running reports the last timer state shown.
func (manager *Manager) Running() bool {
	return manager.running
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("GaWe",
		manager.statusItem,
		manager.loadItem,
		manager.timerItem,
		fyne.NewMenuItemSeparator(),
		manager.musicItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		manager.activityItem,
		manager.prefsItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

// StatusLabel renders a timer snapshot for the tray, e.g. "Focus 24:59".
func StatusLabel(update events.TimerUpdate, loaded bool) string {
	if !loaded {
		return "No session loaded"
	}
	label := fmt.Sprintf("%s %s", update.CurrentTaskName, FormatRemaining(update.RemainingSeconds))
	if update.IsBreak {
		label = "Break: " + label
	}
	if !update.IsRunning {
		label += " (paused)"
	}
	return label
}

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds uint32) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
