package audio

// Command is a message consumed by the audio worker. The set is closed:
// PlayFile, PlayCue, PauseToggle, Stop and SetVolume.
type Command interface {
	CommandName() string
	isCommand()
}

// PlayFile replaces the background track with the file at Path.
type PlayFile struct {
	Path string
	Loop bool
}

// PlayCue plays the short alert sound alongside any background track.
type PlayCue struct{}

// PauseToggle pauses or resumes the background track.
type PauseToggle struct{}

// Stop releases the background track.
type Stop struct{}

// SetVolume sets the background volume in the range 0..1.
type SetVolume struct {
	Volume float64
}

func (PlayFile) CommandName() string    { return "play_file" }
func (PlayCue) CommandName() string     { return "play_cue" }
func (PauseToggle) CommandName() string { return "pause" }
func (Stop) CommandName() string        { return "stop" }
func (SetVolume) CommandName() string   { return "set_volume" }

func (PlayFile) isCommand()    {}
func (PlayCue) isCommand()     {}
func (PauseToggle) isCommand() {}
func (Stop) isCommand()        {}
func (SetVolume) isCommand()   {}
