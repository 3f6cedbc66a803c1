package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var musicExtensions = []string{".mp3", ".wav", ".flac", ".ogg", ".oga"}

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	activity  *widget.Check
	threshold *widget.Entry
	music     *widget.Entry
	volume    *widget.Slider
	loop      *widget.Check
	autoPlay  *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("GaWe Settings")

	activityCheck := widget.NewCheck("Warn when I'm away during a session", nil)
	threshold := widget.NewEntry()
	music := widget.NewEntry()
	music.SetPlaceHolder("No background music")
	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05
	loop := widget.NewCheck("Loop track", nil)
	autoPlay := widget.NewCheck("Start music with the timer", nil)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		activity:  activityCheck,
		threshold: threshold,
		music:     music,
		volume:    volume,
		loop:      loop,
		autoPlay:  autoPlay,
	}
	prefs.UpdateSettings(settings)

	browse := widget.NewButton("Browse...", prefs.chooseMusic)
	form := container.NewVBox(
		widget.NewLabelWithStyle("Activity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		activityCheck,
		container.NewHBox(widget.NewLabel("Idle threshold"), threshold, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Music", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, browse, music),
		widget.NewLabel("Volume"),
		volume,
		loop,
		autoPlay,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 400))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.activity.SetChecked(settings.ActivityEnabled)
	prefs.threshold.SetText(fmt.Sprintf("%d", settings.ActivityThresholdSeconds))
	prefs.music.SetText(settings.MusicFilePath)
	prefs.volume.SetValue(settings.MusicVolume)
	prefs.loop.SetChecked(settings.MusicLoop)
	prefs.autoPlay.SetChecked(settings.MusicAutoPlay)
}

func (prefs *Window) chooseMusic() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		prefs.music.SetText(reader.URI().Path())
	}, prefs.window)
	open.SetFilter(storage.NewExtensionFileFilter(musicExtensions))
	open.Show()
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	// Zero is a valid threshold: warn on the first idle sample.
	if seconds, err := strconv.ParseUint(prefs.threshold.Text, 10, 64); err == nil {
		settings.ActivityThresholdSeconds = seconds
	}
	settings.ActivityEnabled = prefs.activity.Checked
	settings.MusicFilePath = prefs.music.Text
	settings.MusicVolume = prefs.volume.Value
	settings.MusicLoop = prefs.loop.Checked
	settings.MusicAutoPlay = prefs.autoPlay.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
