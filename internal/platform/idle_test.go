package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juandisay/GaWe/internal/core/activity"
)

type fixedIdle struct {
	idle time.Duration
	err  error
}

func (source fixedIdle) IdleDuration() (time.Duration, error) {
	return source.idle, source.err
}

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1500\n")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, idle)

	idle, err = parseIdleMillis("-20")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("busy")
	assert.Error(t, err)
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000467>
    {
      "HIDIdleTimeDelta" = 9007199254740991
      "HIDIdleTime" = 2500000000
      "HIDActivityCount" = 12
    }`

	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, idle)

	_, err = parseHIDIdleTime(`"HIDActivityCount" = 12`)
	assert.ErrorIs(t, err, activity.ErrIdleUnsupported)
}

func TestChainProviderFallsThrough(t *testing.T) {
	chain := chainProvider{
		fixedIdle{err: errors.New("no x server")},
		fixedIdle{idle: 42 * time.Second},
	}
	idle, err := chain.IdleDuration()
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, idle)

	_, err = chainProvider{fixedIdle{err: activity.ErrIdleUnsupported}}.IdleDuration()
	assert.ErrorIs(t, err, activity.ErrIdleUnsupported)

	_, err = chainProvider{}.IdleDuration()
	assert.ErrorIs(t, err, activity.ErrIdleUnsupported)
}

func TestUnsupportedProvider(t *testing.T) {
	_, err := unsupportedIdleProvider{}.IdleDuration()
	assert.ErrorIs(t, err, activity.ErrIdleUnsupported)
}
