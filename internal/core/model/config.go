package model

// ActivityConfig controls the idle warning.
type ActivityConfig struct {
	Enabled          bool
	ThresholdSeconds uint64
}

// MusicConfig describes the optional background track.
type MusicConfig struct {
	FilePath string
	Loop     bool
	AutoPlay bool
	Volume   float64
}
