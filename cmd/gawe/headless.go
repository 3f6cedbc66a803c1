package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/juandisay/GaWe/internal/config"
	"github.com/juandisay/GaWe/internal/core/events"
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run a session without the tray, logging events to the console",
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		if options.SessionFile == "" {
			return errors.New("headless mode needs --session")
		}
		return runHeadless(cmd.Context(), options)
	},
}

// runHeadless plays one session to completion or until ctx is cancelled.
func runHeadless(ctx context.Context, options config.Options) error {
	svc, err := newServices(ctx, options)
	if err != nil {
		return err
	}
	defer svc.Close()

	finished := make(chan struct{})
	go svc.pumpEvents(svc.bus.Subscribe(64), func(event events.Event) {
		switch event := event.(type) {
		case events.TimerUpdate:
			svc.logger.Debug("tick", "task", event.CurrentTaskName, "remaining", event.RemainingSeconds)
		case events.SessionFinished:
			select {
			case <-finished:
			default:
				close(finished)
			}
		}
	})
	notifications := svc.bus.SubscribeNotifications(16)
	go func() {
		for notification := range notifications {
			svc.logger.Info(notification.Title, "body", notification.Body)
		}
	}()

	svc.controller.StartTimer()
	status, _ := svc.controller.TimerStatus()
	svc.logger.Info("session started", "session", status.SessionID, "task", status.CurrentTaskName)

	select {
	case <-finished:
		svc.logger.Info("session complete")
	case <-ctx.Done():
		svc.logger.Info("interrupted")
	}
	return nil
}
