package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/juandisay/GaWe/internal/app"
	"github.com/juandisay/GaWe/internal/audio"
	"github.com/juandisay/GaWe/internal/config"
	"github.com/juandisay/GaWe/internal/core/activity"
	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/core/timer"
	"github.com/juandisay/GaWe/internal/metrics"
	"github.com/juandisay/GaWe/internal/platform"
	"github.com/juandisay/GaWe/internal/storage"
	"github.com/juandisay/GaWe/internal/telemetry"
	"github.com/juandisay/GaWe/internal/ui/preferences"
)

// services is the wired core shared by the desktop and headless hosts.
type services struct {
	logger     *slog.Logger
	logCloser  io.Closer
	metrics    *metrics.Metrics
	bus        *events.Bus
	engine     *timer.Engine
	monitor    *activity.Monitor
	worker     *audio.Worker
	controller *app.Controller
	cancel     context.CancelFunc
}

func newServices(ctx context.Context, options config.Options) (*services, error) {
	logger, logCloser, err := telemetry.InitLogger(telemetry.Options{
		Debug:   options.Debug,
		Format:  options.LogFormat,
		LogFile: options.LogFile,
	})
	if err != nil {
		return nil, err
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	instruments := metrics.New()
	bus := events.NewBus()
	sink := instruments.InstrumentSink(bus)

	worker := audio.Start(audio.Options{
		Logger:    logger.With("component", "audio"),
		OnCommand: func(command audio.Command) { instruments.ObserveAudioCommand(command) },
	})
	engine := timer.New(sink, worker, timer.Config{
		TickInterval: options.TickInterval,
		Logger:       logger.With("component", "timer"),
	})
	monitor := activity.New(platform.NewIdleProvider(), sink, activity.Config{
		PollInterval: options.IdlePollInterval,
		Logger:       logger.With("component", "activity"),
	})
	controller := app.New(app.Options{
		Timer:    engine,
		Music:    worker,
		Activity: monitor,
		Settings: settings,
		Save: func(settings preferences.Settings) error {
			return storage.SaveSettings(appName, settings)
		},
		Logger: logger,
	})

	svc := &services{
		logger:     logger,
		logCloser:  logCloser,
		metrics:    instruments,
		bus:        bus,
		engine:     engine,
		monitor:    monitor,
		worker:     worker,
		controller: controller,
		cancel:     cancel,
	}

	monitor.StartMonitoring(ctx)
	if options.MetricsAddr != "" {
		go func() {
			if err := instruments.Serve(ctx, options.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}
	if options.SessionFile != "" {
		if err := svc.loadSessionFile(options.SessionFile); err != nil {
			svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

func (svc *services) loadSessionFile(path string) error {
	session, err := storage.LoadSessionFile(path)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	svc.controller.LoadSession(session)
	return nil
}

// pumpEvents feeds engine events to the controller and then to handle.
// It returns when the bus is closed.
func (svc *services) pumpEvents(stream <-chan events.Event, handle func(events.Event)) {
	for event := range stream {
		svc.controller.HandleEvent(event)
		if _, ok := event.(events.TimerUpdate); !ok {
			svc.logger.Info("event", "name", event.EventName())
		}
		if handle != nil {
			handle(event)
		}
	}
}

// Close stops the timer, the monitor and the audio device, in that order.
func (svc *services) Close() {
	svc.engine.Close()
	svc.cancel()
	svc.worker.Close()
	svc.bus.Close()
	_ = svc.logCloser.Close()
}
