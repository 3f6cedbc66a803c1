package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const resampleQuality = 4

// decodeFile opens path and picks a decoder from its extension.
// The returned stream owns the file; closing it releases both.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		stream, format, err = mp3.Decode(file)
	case ".wav":
		stream, format, err = wav.Decode(file)
	case ".flac":
		stream, format, err = flac.Decode(file)
	case ".ogg", ".oga":
		stream, format, err = vorbis.Decode(file)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		_ = file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fileStream{StreamSeekCloser: stream, file: file}, format, nil
}

type fileStream struct {
	beep.StreamSeekCloser
	file *os.File
}

func (stream *fileStream) Close() error {
	err := stream.StreamSeekCloser.Close()
	_ = stream.file.Close()
	return err
}

func resample(from, to beep.SampleRate, streamer beep.Streamer) beep.Streamer {
	if from == to || from <= 0 {
		return streamer
	}
	return beep.Resample(resampleQuality, from, to, streamer)
}

func clampVolume(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

// newVolume wraps streamer with a linear gain in the range 0..1.
func newVolume(streamer beep.Streamer, level float64) *effects.Volume {
	volume := &effects.Volume{Streamer: streamer, Base: 2}
	setLevel(volume, level)
	return volume
}

func setLevel(volume *effects.Volume, level float64) {
	level = clampVolume(level)
	volume.Silent = level == 0
	volume.Volume = 0
	if level > 0 {
		volume.Volume = math.Log2(level)
	}
}
