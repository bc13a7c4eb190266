//go:build darwin

package wallpaper

import (
	"fmt"
	"image"
	"os/exec"
)

// macOSOS implements the OS interface for macOS. The lock screen follows the
// desktop picture, so only the legacy call is offered.
type macOSOS struct {
	store *bitmapStore
}

func (m *macOSOS) SupportsTargetedWallpaper() bool { return false }

func (m *macOSOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return m.set(img, cropHint, allowBackup)
}

// SetBitmap sets the desktop picture on every desktop.
func (m *macOSOS) SetBitmap(img image.Image) error {
	return m.set(img, nil, true)
}

func (m *macOSOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	return m.store.apply(img, cropHint, allowBackup, slotHome, setDesktopPicture)
}

func setDesktopPicture(path string) error {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to POSIX file %q`, path)
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("%w: osascript: %w (%s)", ErrIO, err, out)
	}
	return nil
}

// getOS returns a new instance of the macOSOS struct.
func getOS() OS {
	return &macOSOS{store: newBitmapStore()}
}
