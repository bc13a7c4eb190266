//go:build linux

package wallpaper

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandRunner runs an external wallpaper tool.
type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// detectDesktop returns the lowercased desktop identifier of the session.
func detectDesktop() string {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	return strings.ToLower(desktopEnv)
}

// getOS picks the wallpaper tool for the running desktop.
func getOS() OS {
	return osForDesktop(detectDesktop(), newBitmapStore(), runCommand)
}

func osForDesktop(desktop string, store *bitmapStore, run commandRunner) OS {
	switch {
	case strings.Contains(desktop, "gnome"), strings.Contains(desktop, "unity"),
		strings.Contains(desktop, "cinnamon"), strings.Contains(desktop, "mutter"):
		return &gnomeOS{store: store, run: run}
	case strings.Contains(desktop, "kde"):
		return &kdeOS{store: store}
	case strings.Contains(desktop, "xfce"):
		return &xfceOS{store: store, run: run}
	case strings.Contains(desktop, "sway"):
		return &swayOS{store: store, run: run}
	default:
		return &unsupportedOS{desktop: desktop}
	}
}

// gnomeOS sets wallpapers through gsettings. GNOME keeps separate keys for the
// desktop background and the lock screen, so it supports targeted wallpapers.
type gnomeOS struct {
	store *bitmapStore
	run   commandRunner
}

func (g *gnomeOS) SupportsTargetedWallpaper() bool { return true }

// gnomeSurface is one wallpaper slot and the gsettings keys that point at it.
type gnomeSurface struct {
	slot string
	keys [][2]string
	path string
}

// SetBitmapWithFlags writes one file per selected surface, then points gsettings at them.
// If a later key fails, surfaces set before it stay applied and the error is returned.
func (g *gnomeOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	var surfaces []gnomeSurface
	if flags.Has(FlagSystem) {
		surfaces = append(surfaces, gnomeSurface{slot: slotHome, keys: [][2]string{
			{"org.gnome.desktop.background", "picture-uri"},
			{"org.gnome.desktop.background", "picture-uri-dark"},
		}})
	}
	if flags.Has(FlagLock) {
		surfaces = append(surfaces, gnomeSurface{slot: slotLock, keys: [][2]string{
			{"org.gnome.desktop.screensaver", "picture-uri"},
		}})
	}
	if len(surfaces) == 0 {
		return fmt.Errorf("no wallpaper surface selected (flags %d)", flags)
	}

	for i := range surfaces {
		path, err := g.store.save(img, cropHint, allowBackup, surfaces[i].slot)
		if err != nil {
			for _, saved := range surfaces[:i] {
				g.store.discard(saved.path)
			}
			return err
		}
		surfaces[i].path = path
	}

	for i, sf := range surfaces {
		for j, key := range sf.keys {
			if err := g.gsettings(key[0], key[1], fileURI(sf.path)); err != nil {
				for _, done := range surfaces[:i] {
					g.store.commit(done.slot, done.path)
				}
				unused := surfaces[i+1:]
				if j == 0 {
					unused = surfaces[i:]
				}
				for _, rest := range unused {
					g.store.discard(rest.path)
				}
				return err
			}
		}
	}

	for _, sf := range surfaces {
		g.store.commit(sf.slot, sf.path)
	}
	return nil
}

// SetBitmap sets the desktop background only.
func (g *gnomeOS) SetBitmap(img image.Image) error {
	return g.SetBitmapWithFlags(img, nil, true, FlagSystem)
}

func (g *gnomeOS) gsettings(schema, key, value string) error {
	return g.run("gsettings", "set", schema, key, value)
}

// xfceOS sets the backdrop of the first monitor and workspace.
type xfceOS struct {
	store *bitmapStore
	run   commandRunner
}

func (x *xfceOS) SupportsTargetedWallpaper() bool { return false }

func (x *xfceOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return x.set(img, cropHint, allowBackup)
}

func (x *xfceOS) SetBitmap(img image.Image) error {
	return x.set(img, nil, true)
}

func (x *xfceOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	return x.store.apply(img, cropHint, allowBackup, slotHome, func(path string) error {
		return x.run("xfconf-query",
			"--channel", "xfce4-desktop",
			"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
			"--set", path)
	})
}

// swayOS sets the background of every output through swaymsg.
type swayOS struct {
	store *bitmapStore
	run   commandRunner
}

func (s *swayOS) SupportsTargetedWallpaper() bool { return false }

func (s *swayOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return s.set(img, cropHint, allowBackup)
}

func (s *swayOS) SetBitmap(img image.Image) error {
	return s.set(img, nil, true)
}

func (s *swayOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	return s.store.apply(img, cropHint, allowBackup, slotHome, func(path string) error {
		return s.run("swaymsg", "output", "*", "bg", path, "fill")
	})
}

func fileURI(path string) string {
	return "file://" + filepath.ToSlash(path)
}
