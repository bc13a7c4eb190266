package wallpaper

import (
	"fmt"
	"image"
)

// DefaultOS returns the wallpaper facility of the running desktop.
func DefaultOS() OS {
	return getOS()
}

// unsupportedOS is returned when no known wallpaper tool matches the running desktop.
// Its failures are not I/O failures, so the bridge reports them as unknown errors.
type unsupportedOS struct {
	desktop string
}

func (u *unsupportedOS) SupportsTargetedWallpaper() bool { return false }

func (u *unsupportedOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return u.SetBitmap(img)
}

func (u *unsupportedOS) SetBitmap(image.Image) error {
	return fmt.Errorf("unsupported desktop environment: %q", u.desktop)
}
