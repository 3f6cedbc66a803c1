package activity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// DefaultThresholdSeconds is the idle time after which a warning is raised.
const DefaultThresholdSeconds = 300

// IdleSource reports the duration of user inactivity.
type IdleSource interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for Monitor.
type Config struct {
	PollInterval time.Duration
	Logger       *slog.Logger
}

// State is a snapshot of the monitor settings and latch.
type State struct {
	Enabled          bool
	ThresholdSeconds uint64
	Warned           bool
}

// Monitor polls an IdleSource and warns once per idle episode.
type Monitor struct {
	mu          sync.Mutex
	enabled     bool
	threshold   uint64
	warned      bool
	source      IdleSource
	sink        events.Sink
	options     Config
	startOnce   sync.Once
	unsupported sync.Once
}

// New creates a disabled monitor with the default threshold.
func New(source IdleSource, sink events.Sink, options Config) *Monitor {
	if options.PollInterval <= 0 {
		options.PollInterval = 5 * time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if sink == nil {
		sink = events.Discard
	}
	return &Monitor{
		threshold: DefaultThresholdSeconds,
		source:    source,
		sink:      sink,
		options:   options,
	}
}

// SetEnabled turns polling evaluation on or off.
func (monitor *Monitor) SetEnabled(enabled bool) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.enabled = enabled
}

// SetThreshold sets the idle threshold in seconds. Any value is accepted.
func (monitor *Monitor) SetThreshold(seconds uint64) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.threshold = seconds
}

// Configure applies both settings in one step.
func (monitor *Monitor) Configure(config model.ActivityConfig) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.enabled = config.Enabled
	monitor.threshold = config.ThresholdSeconds
}

// State returns the current settings and latch value.
func (monitor *Monitor) State() State {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return State{
		Enabled:          monitor.enabled,
		ThresholdSeconds: monitor.threshold,
		Warned:           monitor.warned,
	}
}

// StartMonitoring spawns the polling loop. Only the first call has an effect;
// the loop runs until ctx is cancelled.
func (monitor *Monitor) StartMonitoring(ctx context.Context) {
	monitor.startOnce.Do(func() {
		go monitor.run(ctx)
	})
}

func (monitor *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(monitor.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.poll()
		}
	}
}

func (monitor *Monitor) poll() {
	monitor.mu.Lock()
	enabled := monitor.enabled
	monitor.mu.Unlock()
	if !enabled || monitor.source == nil {
		return
	}

	idle, err := monitor.source.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			monitor.unsupported.Do(func() {
				monitor.options.Logger.Warn("idle detection unavailable", "error", err)
			})
			return
		}
		monitor.options.Logger.Debug("idle sample failed", "error", err)
		return
	}
	idleSeconds := uint64(idle / time.Second)

	monitor.mu.Lock()
	warn := false
	switch {
	case idleSeconds >= monitor.threshold && !monitor.warned:
		monitor.warned = true
		warn = true
	case idleSeconds < monitor.threshold && monitor.warned:
		monitor.warned = false
	}
	monitor.mu.Unlock()

	if !warn {
		return
	}
	monitor.sink.Emit(events.ActivityWarning{})
	monitor.sink.Notify(events.Notification{
		Title: "Are you still there?",
		Body:  "We haven't detected any activity for a while. Stay focused!",
	})
	monitor.options.Logger.Info("idle warning raised", "idle_seconds", idleSeconds)
}
