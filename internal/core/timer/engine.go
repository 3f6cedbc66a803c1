package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/juandisay/GaWe/internal/core/events"
	"github.com/juandisay/GaWe/internal/core/model"
)

// CuePlayer plays the short alert sound on task transitions.
type CuePlayer interface {
	PlayCue()
}

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Engine owns the loaded session and counts it down one tick at a time.
//
// Every read and write of the timer state goes through mu. Events, banners and
// cues are published after mu is released, so sinks must not call back into
// the engine synchronously.
type Engine struct {
	mu        sync.Mutex
	options   Config
	sink      events.Sink
	cues      CuePlayer
	session   *model.Session
	taskIndex int
	remaining uint32
	running   bool
	loop      *tickLoop
}

type tickLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (loop *tickLoop) wait() {
	if loop == nil {
		return
	}
	<-loop.done
}

// transition is the outcome of a single tick.
type transition struct {
	event        events.Event
	notification *events.Notification
	cue          bool
	finished     bool
}

// New creates an Engine with no session loaded.
func New(sink events.Sink, cues CuePlayer, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if sink == nil {
		sink = events.Discard
	}
	return &Engine{
		options: options,
		sink:    sink,
		cues:    cues,
	}
}

// LoadSession replaces the session and resets progress. A running loop is
// cancelled before the state is reset and joined once the lock is released.
func (engine *Engine) LoadSession(session model.Session) {
	engine.mu.Lock()
	stale := engine.cancelLoopLocked()
	engine.running = false
	loaded := session.Clone()
	engine.session = &loaded
	engine.taskIndex = 0
	engine.remaining = 0
	if len(loaded.Tasks) > 0 {
		engine.remaining = loaded.Tasks[0].DurationSeconds()
	}
	engine.mu.Unlock()

	stale.wait()
	engine.options.Logger.Debug("session loaded", "session_id", loaded.ID, "tasks", len(loaded.Tasks))
}

// Start launches the tick loop. It does nothing when already running or when
// no session is loaded.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running || engine.session == nil {
		return
	}
	engine.running = true
	engine.cancelLoopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	loop := &tickLoop{cancel: cancel, done: make(chan struct{})}
	engine.loop = loop
	go engine.run(ctx, loop)

	engine.options.Logger.Debug("timer started", "session_id", engine.session.ID, "task_index", engine.taskIndex)
}

// Pause stops the tick loop. Calling it while paused has no effect.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		engine.options.Logger.Debug("timer paused", "remaining_seconds", engine.remaining)
	}
	engine.running = false
	engine.cancelLoopLocked()
}

// Status returns a snapshot of the timer. ok is false when no session is
// loaded or the current index is out of range.
func (engine *Engine) Status() (update events.TimerUpdate, ok bool) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Running reports whether the tick loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Close stops the tick loop and waits for it to exit.
func (engine *Engine) Close() {
	engine.mu.Lock()
	engine.running = false
	loop := engine.cancelLoopLocked()
	engine.mu.Unlock()
	loop.wait()
}

func (engine *Engine) run(ctx context.Context, loop *tickLoop) {
	defer close(loop.done)
	for {
		if !sleepWithContext(ctx, engine.options.TickInterval) {
			return
		}
		if !engine.tick(loop) {
			return
		}
	}
}

// tick performs one iteration under the lock and publishes its outcome after
// releasing it. It returns false when the loop should exit.
func (engine *Engine) tick(loop *tickLoop) bool {
	engine.mu.Lock()
	if !engine.running || engine.loop != loop {
		engine.mu.Unlock()
		return false
	}
	change := engine.advanceLocked()
	if change.finished {
		engine.running = false
		engine.cancelLoopLocked()
	}
	engine.mu.Unlock()

	engine.publish(change)
	return !change.finished
}

func (engine *Engine) advanceLocked() transition {
	if engine.session == nil {
		panic("timer: tick loop running without a session")
	}

	if engine.remaining > 0 {
		engine.remaining--
		update, _ := engine.snapshotLocked()
		return transition{event: update}
	}

	tasks := engine.session.Tasks
	if engine.taskIndex+1 < len(tasks) {
		engine.taskIndex++
		next := tasks[engine.taskIndex]
		engine.remaining = next.DurationSeconds()
		return transition{
			event: events.TaskChanged{TaskName: next.Name},
			notification: &events.Notification{
				Title: "Task Finished",
				Body:  "Next: " + next.Name,
			},
			cue: true,
		}
	}

	return transition{
		event: events.SessionFinished{},
		notification: &events.Notification{
			Title: "Session Finished",
			Body:  "All tasks completed!",
		},
		cue:      true,
		finished: true,
	}
}

func (engine *Engine) publish(change transition) {
	engine.sink.Emit(change.event)
	if change.notification != nil {
		engine.sink.Notify(*change.notification)
	}
	if change.cue && engine.cues != nil {
		engine.cues.PlayCue()
	}
	switch event := change.event.(type) {
	case events.TaskChanged:
		engine.options.Logger.Info("task changed", "task", event.TaskName)
	case events.SessionFinished:
		engine.options.Logger.Info("session finished")
	}
}

func (engine *Engine) snapshotLocked() (events.TimerUpdate, bool) {
	if engine.session == nil || engine.taskIndex < 0 || engine.taskIndex >= len(engine.session.Tasks) {
		return events.TimerUpdate{}, false
	}
	task := engine.session.Tasks[engine.taskIndex]
	return events.TimerUpdate{
		RemainingSeconds: engine.remaining,
		CurrentTaskIndex: engine.taskIndex,
		IsRunning:        engine.running,
		CurrentTaskName:  task.Name,
		IsBreak:          task.IsBreak(),
		SessionID:        engine.session.ID,
	}, true
}

// cancelLoopLocked cancels the current loop, if any, and returns it so the
// caller can join it after releasing the lock.
func (engine *Engine) cancelLoopLocked() *tickLoop {
	loop := engine.loop
	if loop == nil {
		return nil
	}
	loop.cancel()
	engine.loop = nil
	return loop
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
