package wallpaper

import (
	"errors"
	"image"
	"sync"
)

// CallbackOS implements OS for an embedding host that applies wallpapers itself.
// The bitmap is persisted and its path handed to the registered callback.
type CallbackOS struct {
	mu       sync.Mutex
	callback func(path string) error
	store    *bitmapStore
}

// NewCallbackOS creates a CallbackOS that persists bitmaps in the user's directories.
func NewCallbackOS() *CallbackOS {
	return &CallbackOS{store: newBitmapStore()}
}

// RegisterCallback registers the function that applies a persisted wallpaper.
func (c *CallbackOS) RegisterCallback(cb func(path string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = cb
}

// SupportsTargetedWallpaper is false: the callback only knows one surface.
func (c *CallbackOS) SupportsTargetedWallpaper() bool { return false }

// SetBitmapWithFlags ignores flags and sets the system wallpaper.
func (c *CallbackOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	return c.set(img, cropHint, allowBackup)
}

// SetBitmap persists img and passes its path to the callback.
func (c *CallbackOS) SetBitmap(img image.Image) error {
	return c.set(img, nil, true)
}

func (c *CallbackOS) set(img image.Image, cropHint *image.Rectangle, allowBackup bool) error {
	c.mu.Lock()
	cb := c.callback
	c.mu.Unlock()

	if cb == nil {
		return errors.New("wallpaper host callback not registered")
	}
	return c.store.apply(img, cropHint, allowBackup, slotHome, cb)
}
