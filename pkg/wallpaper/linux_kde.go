//go:build linux

package wallpaper

import (
	"fmt"
	"image"

	"github.com/godbus/dbus/v5"
)

const plasmaScript = `var allDesktops = desktops();
for (var i = 0; i < allDesktops.length; i++) {
    var d = allDesktops[i];
    d.wallpaperPlugin = "org.kde.image";
    d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
    d.writeConfig("Image", %q);
}`

// kdeOS sets the Plasma desktop wallpaper through the session bus.
type kdeOS struct {
	store *bitmapStore
}

func (k *kdeOS) SupportsTargetedWallpaper() bool { return false }

func (k *kdeOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return k.set(img, cropHint, allowBackup)
}

func (k *kdeOS) SetBitmap(img image.Image) error {
	return k.set(img, nil, true)
}

func (k *kdeOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	return k.store.apply(img, cropHint, allowBackup, slotHome, evaluatePlasmaScript)
}

func evaluatePlasmaScript(path string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("%w: session bus: %w", ErrIO, err)
	}
	defer conn.Close()

	obj := conn.Object("org.kde.plasmashell", "/PlasmaShell")
	call := obj.Call("org.kde.PlasmaShell.evaluateScript", 0, fmt.Sprintf(plasmaScript, fileURI(path)))
	if call.Err != nil {
		return fmt.Errorf("%w: plasmashell evaluateScript: %w", ErrIO, call.Err)
	}
	return nil
}
