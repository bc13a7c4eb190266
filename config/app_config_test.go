package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestAppConfig(t *testing.T) {
	cfg := NewAppConfig(test.NewTempApp(t).Preferences())

	t.Run("Port", func(t *testing.T) {
		assert.Equal(t, DefaultPort, cfg.GetPort())
		assert.Equal(t, "127.0.0.1:49453", cfg.Addr())

		cfg.SetPort(50000)
		assert.Equal(t, 50000, cfg.GetPort())
		assert.Equal(t, "127.0.0.1:50000", cfg.Addr())

		cfg.SetPort(70000)
		assert.Equal(t, DefaultPort, cfg.GetPort())
	})

	t.Run("LegacyMode", func(t *testing.T) {
		// Default should be false
		assert.False(t, cfg.GetLegacyMode())

		cfg.SetLegacyMode(true)
		assert.True(t, cfg.GetLegacyMode())

		cfg.SetLegacyMode(false)
		assert.False(t, cfg.GetLegacyMode())
	})

	t.Run("Pacing", func(t *testing.T) {
		assert.Equal(t, DefaultRequestsPerSec, cfg.GetRequestsPerSec())
		assert.Equal(t, DefaultBurst, cfg.GetBurst())

		cfg.SetRequestsPerSec(5)
		cfg.SetBurst(10)
		assert.Equal(t, 5.0, cfg.GetRequestsPerSec())
		assert.Equal(t, 10, cfg.GetBurst())

		cfg.SetRequestsPerSec(-1)
		cfg.SetBurst(0)
		assert.Equal(t, DefaultRequestsPerSec, cfg.GetRequestsPerSec())
		assert.Equal(t, DefaultBurst, cfg.GetBurst())
	})
}
