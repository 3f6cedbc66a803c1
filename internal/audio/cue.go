package audio

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
)

// CueAssetPath is where the packaged cue sound lives relative to a base directory.
var CueAssetPath = filepath.Join("dist", "tone", "bell.mp3")

const cueToneDuration = 200 * time.Millisecond

// CueLocator finds the packaged cue sound. The executable's directory is
// probed first, then the working directory.
type CueLocator struct {
	RelativePath string
	Executable   func() (string, error)
	WorkingDir   func() (string, error)
}

// DefaultCueLocator looks for CueAssetPath next to the running binary and in
// the working directory.
func DefaultCueLocator() CueLocator {
	return CueLocator{
		RelativePath: CueAssetPath,
		Executable:   os.Executable,
		WorkingDir:   os.Getwd,
	}
}

// Candidates lists the probed paths in order.
func (locator CueLocator) Candidates() []string {
	if locator.RelativePath == "" {
		return nil
	}

	var candidates []string
	if locator.Executable != nil {
		if executable, err := locator.Executable(); err == nil && executable != "" {
			candidates = append(candidates, filepath.Join(resourceDir(executable), locator.RelativePath))
		}
	}
	if locator.WorkingDir != nil {
		if dir, err := locator.WorkingDir(); err == nil && dir != "" {
			candidates = append(candidates, filepath.Join(dir, locator.RelativePath))
		}
	}
	return candidates
}

// Resolve returns the first candidate that exists as a regular file.
func (locator CueLocator) Resolve() (string, bool) {
	for _, candidate := range locator.Candidates() {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// resourceDir maps an executable path to its packaged resource directory.
// Inside a macOS bundle that is Contents/Resources next to Contents/MacOS.
func resourceDir(executable string) string {
	dir := filepath.Dir(executable)
	if filepath.Base(dir) == "MacOS" {
		return filepath.Join(filepath.Dir(dir), "Resources")
	}
	return dir
}

// synthesizeCue builds the two-tone fallback beep.
func synthesizeCue(sampleRate beep.SampleRate) beep.Streamer {
	length := sampleRate.N(cueToneDuration)
	low, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return beep.Silence(length)
	}
	high, err := generators.SineTone(sampleRate, 1760)
	if err != nil {
		return beep.Silence(length)
	}
	return beep.Mix(
		&effects.Gain{Streamer: beep.Take(length, low), Gain: -0.5},
		&effects.Gain{Streamer: beep.Take(length, high), Gain: -0.7},
	)
}
