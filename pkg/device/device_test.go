package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensteer/pensteer/pkg/config"
)

func TestValidateResolution(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, validate(&cfg))

	// A 16-bit-limited axis cannot represent this.
	cfg.DeviceResolution = 70000
	assert.ErrorIs(t, validate(&cfg), ErrResolutionTooHigh)
}

func TestValidateName(t *testing.T) {
	cfg := config.Default()
	cfg.DeviceName = strings.Repeat("x", 80)
	assert.ErrorIs(t, validate(&cfg), ErrNameTooLong)

	cfg.DeviceName = strings.Repeat("x", 79)
	assert.NoError(t, validate(&cfg))
}

func TestCreateNoneIsDummy(t *testing.T) {
	cfg := config.Default()
	cfg.Device = config.DeviceNone

	dev, err := Create(&cfg)
	require.NoError(t, err)
	assert.Equal(t, Dummy{}, dev)

	_, ok := dev.Feedback()
	assert.False(t, ok, "the dummy reports no feedback capability")
}

func TestCreateUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Device = "vigem"

	_, err := Create(&cfg)
	assert.Error(t, err)
}
