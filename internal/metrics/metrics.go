package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juandisay/GaWe/internal/core/events"
)

const shutdownTimeout = 5 * time.Second

// AudioCommand is the part of an audio worker command the metrics need.
type AudioCommand interface {
	CommandName() string
}

// Metrics represents the collection of GaWe Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	EventsTotal        *prometheus.CounterVec
	NotificationsTotal prometheus.Counter
	AudioCommandsTotal *prometheus.CounterVec
	RemainingSeconds   prometheus.Gauge
	TimerRunning       prometheus.Gauge
}

// New creates the metrics on a private registry along with Go runtime collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gawe_events_total",
			Help: "Total number of events emitted by the timer and activity monitor",
		},
		[]string{"event"},
	)

	m.NotificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gawe_notifications_total",
			Help: "Total number of notification banners requested",
		},
	)

	m.AudioCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gawe_audio_commands_total",
			Help: "Total number of commands processed by the audio worker",
		},
		[]string{"command"},
	)

	m.RemainingSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gawe_timer_remaining_seconds",
			Help: "Seconds left in the current task as of the last timer update",
		},
	)

	m.TimerRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gawe_timer_running",
			Help: "Whether the session timer is running (1) or not (0)",
		},
	)

	m.registry.MustRegister(
		m.EventsTotal,
		m.NotificationsTotal,
		m.AudioCommandsTotal,
		m.RemainingSeconds,
		m.TimerRunning,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveEvent records an emitted event.
func (m *Metrics) ObserveEvent(event events.Event) {
	m.EventsTotal.WithLabelValues(string(event.EventName())).Inc()
	switch event := event.(type) {
	case events.TimerUpdate:
		m.RemainingSeconds.Set(float64(event.RemainingSeconds))
		m.TimerRunning.Set(boolGauge(event.IsRunning))
	case events.SessionFinished:
		m.RemainingSeconds.Set(0)
		m.TimerRunning.Set(0)
	}
}

// ObserveAudioCommand records a command handled by the audio worker.
func (m *Metrics) ObserveAudioCommand(command AudioCommand) {
	m.AudioCommandsTotal.WithLabelValues(command.CommandName()).Inc()
}

// InstrumentSink counts everything passing through next.
func (m *Metrics) InstrumentSink(next events.Sink) events.Sink {
	return &instrumentedSink{metrics: m, next: next}
}

type instrumentedSink struct {
	metrics *Metrics
	next    events.Sink
}

func (sink *instrumentedSink) Emit(event events.Event) {
	sink.metrics.ObserveEvent(event)
	sink.next.Emit(event)
}

func (sink *instrumentedSink) Notify(notification events.Notification) {
	sink.metrics.NotificationsTotal.Inc()
	sink.next.Notify(notification)
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func boolGauge(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
