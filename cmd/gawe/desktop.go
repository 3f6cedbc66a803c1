package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/juandisay/GaWe/internal/config"
	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/platform"
	"github.com/juandisay/GaWe/internal/ui/preferences"
	"github.com/juandisay/GaWe/internal/ui/tray"
	"github.com/juandisay/GaWe/resources"
)

// runDesktop runs GaWe as a system tray app until the user quits.
func runDesktop(ctx context.Context, options config.Options) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "GaWe is already running.")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	svc, err := newServices(ctx, options)
	if err != nil {
		return err
	}
	defer svc.Close()

	fyneApp := fyneapp.NewWithID("com.juandisay.gawe")
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow("GaWe")
	trayWindow.SetContent(widget.NewLabel("GaWe is running in the system tray."))
	trayWindow.Resize(fyne.NewSize(480, 360))
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	desktopApp.SetSystemTrayWindow(trayWindow)

	controller := svc.controller
	prefsWindow := preferences.New(fyneApp, controller.Settings(), controller.ApplySettings)

	var trayManager *tray.Manager
	refresh := func() {
		status, loaded := controller.TimerStatus()
		trayManager.SetStatus(status, loaded)
		trayManager.SetMusicPlaying(controller.MusicPlaying(), controller.HasMusic())
		trayManager.SetActivityEnabled(controller.Settings().ActivityEnabled)
		desktopApp.SetSystemTrayIcon(trayIcon(status, loaded))
	}

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnLoadSession: func() {
			open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				if err := svc.loadSessionFile(reader.URI().Path()); err != nil {
					dialog.ShowError(err, trayWindow)
					return
				}
				trayWindow.Hide()
				refresh()
			}, trayWindow)
			open.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
			trayWindow.Show()
			open.Show()
		},
		OnToggleTimer: func() {
			if trayManager.Running() {
				controller.PauseTimer()
			} else {
				controller.StartTimer()
			}
			refresh()
		},
		OnToggleMusic: func() {
			if err := controller.ToggleMusic(); err != nil {
				prefsWindow.Show()
			}
			refresh()
		},
		OnStopMusic: func() {
			controller.StopMusic()
			refresh()
		},
		OnToggleActivity: func() {
			settings := controller.Settings()
			controller.SetActivityMonitoring(!settings.ActivityEnabled, settings.ActivityThresholdSeconds)
			refresh()
		},
		OnPreferences: func() {
			prefsWindow.UpdateSettings(controller.Settings())
			prefsWindow.Show()
		},
		OnQuit: func() {
			if allowed, message := controller.QuitAllowed(); !allowed {
				fyneApp.SendNotification(fyne.NewNotification("Session Active", message))
				return
			}
			fyneApp.Quit()
		},
	})
	refresh()

	go svc.pumpEvents(svc.bus.Subscribe(64), func(events.Event) {
		fyne.Do(refresh)
	})
	notifications := svc.bus.SubscribeNotifications(16)
	go func() {
		for notification := range notifications {
			banner := fyne.NewNotification(notification.Title, notification.Body)
			fyne.Do(func() { fyneApp.SendNotification(banner) })
		}
	}()
	go func() {
		for range guard.Activations() {
			fyne.Do(func() {
				fyneApp.SendNotification(fyne.NewNotification("GaWe", "GaWe is already running in the system tray."))
			})
		}
	}()
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()
	return nil
}

func trayIcon(status events.TimerUpdate, loaded bool) fyne.Resource {
	switch {
	case !loaded || !status.IsRunning:
		return resources.MustIcon(resources.IconPaused)
	case status.IsBreak:
		return resources.MustIcon(resources.IconBreak)
	default:
		return resources.MustIcon(resources.IconActive)
	}
}
