package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeCue(t *testing.T, base string) string {
	t.Helper()
	path := filepath.Join(base, CueAssetPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("cue"), 0o644))
	return path
}

func TestCueLocatorPrefersExecutableDir(t *testing.T) {
	exeDir := t.TempDir()
	workDir := t.TempDir()
	expected := placeCue(t, exeDir)
	placeCue(t, workDir)

	locator := CueLocator{
		RelativePath: CueAssetPath,
		Executable:   func() (string, error) { return filepath.Join(exeDir, "gawe"), nil },
		WorkingDir:   func() (string, error) { return workDir, nil },
	}

	path, ok := locator.Resolve()
	require.True(t, ok)
	assert.Equal(t, expected, path)
}

func TestCueLocatorFallsBackToWorkingDir(t *testing.T) {
	workDir := t.TempDir()
	expected := placeCue(t, workDir)

	locator := CueLocator{
		RelativePath: CueAssetPath,
		Executable:   func() (string, error) { return filepath.Join(t.TempDir(), "gawe"), nil },
		WorkingDir:   func() (string, error) { return workDir, nil },
	}

	path, ok := locator.Resolve()
	require.True(t, ok)
	assert.Equal(t, expected, path)
}

func TestCueLocatorUsesBundleResources(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "GaWe.app", "Contents")
	expected := placeCue(t, filepath.Join(bundle, "Resources"))

	locator := CueLocator{
		RelativePath: CueAssetPath,
		Executable:   func() (string, error) { return filepath.Join(bundle, "MacOS", "gawe"), nil },
	}

	path, ok := locator.Resolve()
	require.True(t, ok)
	assert.Equal(t, expected, path)
}

func TestCueLocatorIgnoresDirectories(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, CueAssetPath), 0o755))

	locator := CueLocator{
		RelativePath: CueAssetPath,
		WorkingDir:   func() (string, error) { return workDir, nil },
	}

	_, ok := locator.Resolve()
	assert.False(t, ok)
	assert.Len(t, locator.Candidates(), 1)
}

func TestSynthesizedCueLength(t *testing.T) {
	streamer := synthesizeCue(testRate)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.GreaterOrEqual(t, total, testRate.N(cueToneDuration))
}
