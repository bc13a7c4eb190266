package wallpaper

import "image"

// applier hands a decoded bitmap to the host. There is one implementation per
// host capability; the choice is made once when the Setter is built.
type applier interface {
	apply(img image.Image, target Target) error
	name() string
}

// targetedApplier uses the flagged host call, so home and lock can be set independently.
type targetedApplier struct {
	os OS
}

func (a *targetedApplier) apply(img image.Image, target Target) error {
	return a.os.SetBitmapWithFlags(img, nil, true, target.Flags())
}

func (a *targetedApplier) name() string { return "targeted" }

// legacyApplier sets the single system wallpaper and ignores the requested target.
type legacyApplier struct {
	os OS
}

func (a *legacyApplier) apply(img image.Image, _ Target) error {
	return a.os.SetBitmap(img)
}

func (a *legacyApplier) name() string { return "legacy" }

func newApplier(host OS, forceLegacy bool) applier {
	if !forceLegacy && host.SupportsTargetedWallpaper() {
		return &targetedApplier{os: host}
	}
	return &legacyApplier{os: host}
}
