//go:build !linux && !darwin && !windows

package wallpaper

import "runtime"

// getOS returns the fallback for platforms without a wallpaper implementation.
func getOS() OS {
	return &unsupportedOS{desktop: runtime.GOOS}
}
