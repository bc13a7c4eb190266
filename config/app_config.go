package config

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// PortKey is the key for the channel transport port preference
const PortKey = "bridge_port"

// LegacyModeKey is the key for forcing the single-wallpaper code path
const LegacyModeKey = "bridge_legacy_mode"

// RequestsPerSecKey is the key for the sustained call rate preference
const RequestsPerSecKey = "bridge_requests_per_sec"

// BurstKey is the key for the call burst preference
const BurstKey = "bridge_burst"

// AppConfig holds the bridge configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetPort returns the port the channel transport listens on
func (c *AppConfig) GetPort() int {
	port := c.prefs.IntWithFallback(PortKey, DefaultPort)
	if port <= 0 || port > 65535 {
		return DefaultPort
	}
	return port
}

// SetPort sets the port the channel transport listens on
func (c *AppConfig) SetPort(port int) {
	c.prefs.SetInt(PortKey, port)
}

// Addr returns the loopback address the channel transport binds to
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", ListenHost, c.GetPort())
}

// GetLegacyMode returns whether targeted wallpapers are disabled
func (c *AppConfig) GetLegacyMode() bool {
	return c.prefs.BoolWithFallback(LegacyModeKey, false)
}

// SetLegacyMode sets whether targeted wallpapers are disabled
func (c *AppConfig) SetLegacyMode(enabled bool) {
	c.prefs.SetBool(LegacyModeKey, enabled)
}

// GetRequestsPerSec returns the sustained rate of bridge calls
func (c *AppConfig) GetRequestsPerSec() float64 {
	rps := c.prefs.FloatWithFallback(RequestsPerSecKey, DefaultRequestsPerSec)
	if rps <= 0 {
		return DefaultRequestsPerSec
	}
	return rps
}

// SetRequestsPerSec sets the sustained rate of bridge calls
func (c *AppConfig) SetRequestsPerSec(rps float64) {
	c.prefs.SetFloat(RequestsPerSecKey, rps)
}

// GetBurst returns how many calls may run back to back before pacing applies
func (c *AppConfig) GetBurst() int {
	burst := c.prefs.IntWithFallback(BurstKey, DefaultBurst)
	if burst < 1 {
		return DefaultBurst
	}
	return burst
}

// SetBurst sets how many calls may run back to back before pacing applies
func (c *AppConfig) SetBurst(burst int) {
	c.prefs.SetInt(BurstKey, burst)
}
