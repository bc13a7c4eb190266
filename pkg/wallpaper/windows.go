//go:build windows

package wallpaper

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants (defined manually)
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

// windowsOS implements the OS interface for Windows. The lock screen needs
// WinRT, so only the desktop wallpaper is set.
type windowsOS struct {
	store *bitmapStore
}

func (w *windowsOS) SupportsTargetedWallpaper() bool { return false }

func (w *windowsOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return w.set(img, cropHint, allowBackup)
}

// SetBitmap sets the desktop wallpaper.
func (w *windowsOS) SetBitmap(img image.Image) error {
	return w.set(img, nil, true)
}

func (w *windowsOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	return w.store.apply(img, cropHint, allowBackup, slotHome, setDeskWallpaper)
}

func setDeskWallpaper(path string) error {
	pathUTF16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	ret, _, callErr := systemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(pathUTF16)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return fmt.Errorf("%w: SystemParametersInfoW: %w", ErrIO, callErr)
	}
	return nil
}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{store: newBitmapStore()}
}
