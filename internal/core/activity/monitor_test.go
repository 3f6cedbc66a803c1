package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/core/model"
)

type sample struct {
	idle time.Duration
	err  error
}

type scriptedSource struct {
	mu      sync.Mutex
	samples []sample
	calls   int
}

func (source *scriptedSource) IdleDuration() (time.Duration, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.calls++
	if len(source.samples) == 0 {
		return 0, nil
	}
	next := source.samples[0]
	source.samples = source.samples[1:]
	return next.idle, next.err
}

func (source *scriptedSource) callCount() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.calls
}

type recordingSink struct {
	mu            sync.Mutex
	events        []events.Event
	notifications []events.Notification
}

func (sink *recordingSink) Emit(event events.Event) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.events = append(sink.events, event)
}

func (sink *recordingSink) Notify(notification events.Notification) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.notifications = append(sink.notifications, notification)
}

func (sink *recordingSink) warnings() int {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return len(sink.events)
}

func seconds(values ...int) []sample {
	samples := make([]sample, 0, len(values))
	for _, value := range values {
		samples = append(samples, sample{idle: time.Duration(value) * time.Second})
	}
	return samples
}

func TestWarnsOncePerIdleEpisode(t *testing.T) {
	const threshold = 60
	source := &scriptedSource{samples: seconds(0, 0, threshold+1, threshold+1, threshold+1, 0)}
	sink := &recordingSink{}
	monitor := New(source, sink, Config{})
	monitor.Configure(model.ActivityConfig{Enabled: true, ThresholdSeconds: threshold})

	warningsAfter := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		monitor.poll()
		warningsAfter = append(warningsAfter, sink.warnings())
	}

	assert.Equal(t, []int{0, 0, 1, 1, 1, 1}, warningsAfter)
	assert.Equal(t, []events.Event{events.ActivityWarning{}}, sink.events)
	require.Len(t, sink.notifications, 1)
	assert.Equal(t, "Are you still there?", sink.notifications[0].Title)
	assert.False(t, monitor.State().Warned)
}

func TestNewEpisodeWarnsAgain(t *testing.T) {
	source := &scriptedSource{samples: seconds(10, 0, 10)}
	sink := &recordingSink{}
	monitor := New(source, sink, Config{})
	monitor.Configure(model.ActivityConfig{Enabled: true, ThresholdSeconds: 10})

	monitor.poll()
	monitor.poll()
	monitor.poll()

	assert.Equal(t, 2, sink.warnings())
	assert.True(t, monitor.State().Warned)
}

func TestDisabledMonitorDoesNotSample(t *testing.T) {
	source := &scriptedSource{samples: seconds(1000)}
	sink := &recordingSink{}
	monitor := New(source, sink, Config{})

	monitor.poll()

	assert.Zero(t, source.callCount())
	assert.Zero(t, sink.warnings())
	assert.Equal(t, State{ThresholdSeconds: DefaultThresholdSeconds}, monitor.State())
}

func TestSamplingFailuresAreSkipped(t *testing.T) {
	source := &scriptedSource{samples: []sample{
		{err: errors.New("xprintidle: exit status 1")},
		{err: ErrIdleUnsupported},
		{idle: 30 * time.Second},
	}}
	sink := &recordingSink{}
	monitor := New(source, sink, Config{})
	monitor.SetEnabled(true)
	monitor.SetThreshold(30)

	monitor.poll()
	monitor.poll()
	assert.Zero(t, sink.warnings())
	assert.False(t, monitor.State().Warned)

	monitor.poll()
	assert.Equal(t, 1, sink.warnings())
}

func TestZeroThresholdIsAccepted(t *testing.T) {
	source := &scriptedSource{samples: seconds(0)}
	sink := &recordingSink{}
	monitor := New(source, sink, Config{})
	monitor.Configure(model.ActivityConfig{Enabled: true, ThresholdSeconds: 0})

	monitor.poll()

	assert.Equal(t, 1, sink.warnings())
}

func TestStartMonitoringSpawnsSingleLoop(t *testing.T) {
	source := &scriptedSource{}
	monitor := New(source, &recordingSink{}, Config{PollInterval: time.Millisecond})
	monitor.SetEnabled(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	monitor.StartMonitoring(ctx)
	monitor.StartMonitoring(ctx)

	require.Eventually(t, func() bool {
		return source.callCount() >= 3
	}, 2*time.Second, time.Millisecond)

	cancel()
	time.Sleep(10 * time.Millisecond)
	stopped := source.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, source.callCount())
}
