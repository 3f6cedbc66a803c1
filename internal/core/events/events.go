package events

// Name identifies an event on the wire.
type Name string

const (
	NameTimerUpdate     Name = "timer-update"
	NameTaskChanged     Name = "task-changed"
	NameSessionFinished Name = "session-finished"
	NameActivityWarning Name = "activity-warning"
)

// Event is one of TimerUpdate, TaskChanged, SessionFinished or ActivityWarning.
// The set is closed; consumers switch on the concrete type.
type Event interface {
	EventName() Name
	isEvent()
}

// TimerUpdate is the timer snapshot emitted on every tick and returned by status queries.
type TimerUpdate struct {
	RemainingSeconds uint32 `json:"remaining_seconds"`
	CurrentTaskIndex int    `json:"current_task_index"`
	IsRunning        bool   `json:"is_running"`
	CurrentTaskName  string `json:"current_task_name"`
	IsBreak          bool   `json:"is_break"`
	SessionID        string `json:"session_id"`
}

// TaskChanged carries the name of the task that just became current.
type TaskChanged struct {
	TaskName string `json:"task_name"`
}

// SessionFinished is emitted once the last task runs out.
type SessionFinished struct{}

// ActivityWarning is emitted once per idle episode.
type ActivityWarning struct{}

func (TimerUpdate) EventName() Name     { return NameTimerUpdate }
func (TaskChanged) EventName() Name     { return NameTaskChanged }
func (SessionFinished) EventName() Name { return NameSessionFinished }
func (ActivityWarning) EventName() Name { return NameActivityWarning }

func (TimerUpdate) isEvent()     {}
func (TaskChanged) isEvent()     {}
func (SessionFinished) isEvent() {}
func (ActivityWarning) isEvent() {}

// Notification is a request to show an OS banner.
type Notification struct {
	Title string
	Body  string
}

// Sink receives events and banner requests. Delivery is best-effort and
// implementations must not block the caller for long.
type Sink interface {
	Emit(event Event)
	Notify(notification Notification)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event)          {}
func (discard) Notify(Notification) {}
