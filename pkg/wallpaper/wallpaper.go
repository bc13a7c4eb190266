// Package wallpaper applies an image file as the host wallpaper.
//
// A Setter validates the request, decodes the file and hands the bitmap to
// the host OS. Hosts that can address the home and lock screens separately
// receive a flag set; older hosts get the single system wallpaper.
package wallpaper

import (
	"image"
	"io/fs"
	"os"

	"github.com/hexaghost/wallora/util/log"
)

// SuccessMessage is returned for every applied wallpaper.
const SuccessMessage = "Wallpaper set successfully!"

// OS is the host wallpaper facility.
type OS interface {
	// SupportsTargetedWallpaper reports whether SetBitmapWithFlags is available.
	SupportsTargetedWallpaper() bool
	// SetBitmapWithFlags sets the wallpaper for the surfaces named by flags.
	SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error
	// SetBitmap sets the single system wallpaper.
	SetBitmap(img image.Image) error
}

// Request is a single "set wallpaper" call.
type Request struct {
	FilePath string
	Target   Target
}

// Setter is the wallpaper bridge. It holds no per-call state and performs no
// locking; callers serialize requests if they need to.
type Setter struct {
	decoder     Decoder
	applier     applier
	stat        func(name string) (fs.FileInfo, error)
	forceLegacy bool
}

// Option configures a Setter.
type Option func(*Setter)

// WithDecoder replaces the default image decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Setter) {
		s.decoder = d
	}
}

// WithLegacyMode forces the single-wallpaper call even when the host supports targets.
func WithLegacyMode(enabled bool) Option {
	return func(s *Setter) {
		s.forceLegacy = enabled
	}
}

// NewSetter creates a Setter for the given host. The host capability is queried once, here.
func NewSetter(host OS, opts ...Option) *Setter {
	s := &Setter{
		decoder: NewDecoder(),
		stat:    os.Stat,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applier = newApplier(host, s.forceLegacy)
	log.Debugf("wallpaper setter using %s applier", s.applier.name())
	return s
}

// Mode returns "targeted" or "legacy" depending on the host capability.
func (s *Setter) Mode() string {
	return s.applier.name()
}

// SetWallpaper decodes the file at req.FilePath and applies it to req.Target.
// Failures are returned as *Error. Absent arguments are rejected by the caller
// before a Request exists; an empty path is just a file that does not exist.
func (s *Setter) SetWallpaper(req Request) (string, error) {
	// The file may disappear before it is decoded; that case surfaces as DecodeFailed.
	if _, err := s.stat(req.FilePath); err != nil {
		log.Debugf("wallpaper: %s not found: %v", req.FilePath, err)
		return "", fileNotFound(req.FilePath, err)
	}

	if werr := s.decodeAndApply(req); werr != nil {
		log.Debugf("wallpaper: %s (target %s) failed: %v", req.FilePath, req.Target, werr)
		return "", werr
	}

	log.Debugf("wallpaper: applied %s to %s", req.FilePath, req.Target)
	return SuccessMessage, nil
}

func (s *Setter) decodeAndApply(req Request) (werr *Error) {
	defer func() {
		if r := recover(); r != nil {
			werr = unexpected(panicError(r))
		}
	}()

	img, err := s.decoder.Decode(req.FilePath)
	if err != nil || img == nil {
		return decodeFailed(req.FilePath, err)
	}

	if err := s.applier.apply(img, req.Target); err != nil {
		return applyFailed(err)
	}
	return nil
}
