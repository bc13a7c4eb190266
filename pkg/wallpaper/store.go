package wallpaper

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/util/log"
)

// Surfaces a persisted bitmap can belong to.
const (
	slotHome = "home"
	slotLock = "lock"
)

// bitmapStore persists decoded bitmaps so desktop tools can load them by path.
// Backed-up wallpapers live under the user config dir, the rest under the cache dir.
type bitmapStore struct {
	backupRoot string
	cacheRoot  string
}

func newBitmapStore() *bitmapStore {
	s := &bitmapStore{}
	app := strings.ToLower(config.AppName)
	if dir, err := os.UserConfigDir(); err == nil {
		s.backupRoot = filepath.Join(dir, app, config.WallpaperSubDir)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		s.cacheRoot = filepath.Join(dir, app, config.WallpaperSubDir)
	}
	return s
}

// save writes img as PNG for the given slot and returns its path.
// Older files for the slot stay on disk until commit is called.
func (s *bitmapStore) save(img image.Image, cropHint *image.Rectangle, allowBackup bool, slot string) (string, error) {
	root := s.cacheRoot
	if allowBackup {
		root = s.backupRoot
	}
	if root == "" {
		return "", fmt.Errorf("%w: no directory to persist %s wallpaper", ErrIO, slot)
	}

	if cropHint != nil {
		if cropHint.Intersect(img.Bounds()).Empty() {
			return "", fmt.Errorf("crop hint %v outside image bounds %v", *cropHint, img.Bounds())
		}
		img = imaging.Crop(img, *cropHint)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	// A fresh name per write makes desktops that cache by URI reload the image.
	path := filepath.Join(root, fmt.Sprintf("%s-%s.png", slot, uuid.NewString()))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("%w: saving %s: %w", ErrIO, path, err)
	}

	return path, nil
}

// apply saves img for slot and passes its path to set. The previous file of
// the slot is kept until set succeeds, since the desktop may still point at it.
func (s *bitmapStore) apply(img image.Image, cropHint *image.Rectangle, allowBackup bool, slot string, set func(path string) error) error {
	path, err := s.save(img, cropHint, allowBackup, slot)
	if err != nil {
		return err
	}
	if err := set(path); err != nil {
		s.discard(path)
		return err
	}
	s.commit(slot, path)
	return nil
}

// commit removes the older files of slot now that keep is in use.
func (s *bitmapStore) commit(slot, keep string) {
	s.prune(filepath.Dir(keep), slot, keep)
}

// discard removes a file that never reached the desktop.
func (s *bitmapStore) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Debugf("wallpaper: could not remove unused wallpaper %s: %v", path, err)
	}
}

func (s *bitmapStore) prune(root, slot, keep string) {
	matches, err := filepath.Glob(filepath.Join(root, slot+"-*.png"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if m == keep {
			continue
		}
		if err := os.Remove(m); err != nil {
			log.Debugf("wallpaper: could not remove old %s wallpaper %s: %v", slot, m, err)
		}
	}
}
