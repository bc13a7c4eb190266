package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTargetedMock() *MockOS {
	m := new(MockOS)
	m.On("SupportsTargetedWallpaper").Return(true)
	return m
}

func newLegacyMock() *MockOS {
	m := new(MockOS)
	m.On("SupportsTargetedWallpaper").Return(false)
	return m
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var werr *Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, kind, werr.Kind, werr.Message)
	return werr
}

func TestNewSetterMode(t *testing.T) {
	assert.Equal(t, "targeted", NewSetter(newTargetedMock()).Mode())
	assert.Equal(t, "legacy", NewSetter(newLegacyMock()).Mode())

	// Legacy mode wins over the host capability.
	assert.Equal(t, "legacy", NewSetter(newTargetedMock(), WithLegacyMode(true)).Mode())
}

func TestSetWallpaper_EmptyPath(t *testing.T) {
	mockOS := newTargetedMock()
	mockDecoder := new(MockDecoder)
	s := NewSetter(mockOS, WithDecoder(mockDecoder))

	msg, err := s.SetWallpaper(Request{FilePath: "", Target: TargetHome})

	assert.Empty(t, msg)
	werr := requireKind(t, err, KindFileNotFound)
	assert.Equal(t, "Image file not found at ", werr.Message)
	assert.Empty(t, werr.Detail)
	mockDecoder.AssertNotCalled(t, "Decode", mock.Anything)
	mockOS.AssertNotCalled(t, "SetBitmapWithFlags", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockOS.AssertNotCalled(t, "SetBitmap", mock.Anything)
}

func TestSetWallpaper_FileNotFound(t *testing.T) {
	for _, target := range []Target{TargetHome, TargetLock, TargetBoth, Target(99)} {
		t.Run(target.String(), func(t *testing.T) {
			mockOS := newTargetedMock()
			mockDecoder := new(MockDecoder)
			s := NewSetter(mockOS, WithDecoder(mockDecoder))

			_, err := s.SetWallpaper(Request{FilePath: "/nonexistent.png", Target: target})

			werr := requireKind(t, err, KindFileNotFound)
			assert.Equal(t, "Image file not found at /nonexistent.png", werr.Message)
			assert.True(t, errors.Is(err, fs.ErrNotExist))
			mockDecoder.AssertNotCalled(t, "Decode", mock.Anything)
			mockOS.AssertNotCalled(t, "SetBitmapWithFlags", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSetWallpaper_DecodeFailed(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"zero byte", writeFile(t, dir, "empty.jpg", nil)},
		{"text renamed", writeFile(t, dir, "notes.png", []byte("this is not an image"))},
		{"truncated jpeg", writeFile(t, dir, "cut.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOS := newTargetedMock()
			s := NewSetter(mockOS)

			_, err := s.SetWallpaper(Request{FilePath: tt.path, Target: TargetBoth})

			werr := requireKind(t, err, KindDecodeFailed)
			assert.Equal(t, "Failed to decode image from "+tt.path, werr.Message)
			mockOS.AssertNotCalled(t, "SetBitmapWithFlags", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockOS.AssertNotCalled(t, "SetBitmap", mock.Anything)
		})
	}
}

func TestSetWallpaper_DecoderReturnsNil(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.jpg", []byte("x"))
	mockDecoder := new(MockDecoder)
	mockDecoder.On("Decode", path).Return(nil, nil)
	s := NewSetter(newTargetedMock(), WithDecoder(mockDecoder))

	_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetHome})

	requireKind(t, err, KindDecodeFailed)
}

func TestSetWallpaper_TargetedFlags(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "wall.jpg")
	tests := []struct {
		target Target
		flags  Flag
	}{
		{TargetHome, FlagSystem},
		{TargetLock, FlagLock},
		{TargetBoth, FlagSystem | FlagLock},
		{Target(99), FlagSystem},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("type=%d", int(tt.target)), func(t *testing.T) {
			mockOS := newTargetedMock()
			mockOS.On("SetBitmapWithFlags", mock.Anything, (*image.Rectangle)(nil), true, tt.flags).Return(nil).Once()
			s := NewSetter(mockOS)

			msg, err := s.SetWallpaper(Request{FilePath: path, Target: tt.target})

			require.NoError(t, err)
			assert.Equal(t, SuccessMessage, msg)
			mockOS.AssertExpectations(t)
			mockOS.AssertNumberOfCalls(t, "SetBitmapWithFlags", 1)
			mockOS.AssertNotCalled(t, "SetBitmap", mock.Anything)
		})
	}
}

func TestSetWallpaper_LegacyIgnoresTarget(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "wall.jpg")

	for _, target := range []Target{TargetHome, TargetLock, TargetBoth, Target(99)} {
		t.Run(target.String(), func(t *testing.T) {
			mockOS := newLegacyMock()
			mockOS.On("SetBitmap", mock.Anything).Return(nil).Once()
			s := NewSetter(mockOS)

			msg, err := s.SetWallpaper(Request{FilePath: path, Target: target})

			require.NoError(t, err)
			assert.Equal(t, SuccessMessage, msg)
			mockOS.AssertNumberOfCalls(t, "SetBitmap", 1)
			mockOS.AssertNotCalled(t, "SetBitmapWithFlags", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSetWallpaper_LockOnlyEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeJPEG(t, dir, "wall.jpg")

	mockOS := newTargetedMock()
	mockOS.On("SetBitmapWithFlags", mock.MatchedBy(func(img image.Image) bool {
		return img.Bounds().Dx() == 8 && img.Bounds().Dy() == 6
	}), (*image.Rectangle)(nil), true, FlagLock).Return(nil).Once()
	s := NewSetter(mockOS)

	msg, err := s.SetWallpaper(Request{FilePath: path, Target: TargetLock})

	require.NoError(t, err)
	assert.Equal(t, "Wallpaper set successfully!", msg)
	mockOS.AssertExpectations(t)
	mockOS.AssertNumberOfCalls(t, "SetBitmapWithFlags", 1)
}

func TestSetWallpaper_SetFailed(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wall.png")
	ioErr := &fs.PathError{Op: "write", Path: "/wallpapers/home.png", Err: errors.New("no space left on device")}

	mockOS := newTargetedMock()
	mockOS.On("SetBitmapWithFlags", mock.Anything, mock.Anything, true, FlagSystem).Return(ioErr)
	s := NewSetter(mockOS)

	_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetHome})

	werr := requireKind(t, err, KindSetFailed)
	assert.Equal(t, "Failed to set wallpaper: write /wallpapers/home.png: no space left on device", werr.Message)
	assert.Equal(t, "*fs.PathError: write /wallpapers/home.png: no space left on device", werr.Detail)
	assert.ErrorIs(t, err, ioErr)
}

func TestSetWallpaper_UnknownError(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wall.png")

	mockOS := newLegacyMock()
	mockOS.On("SetBitmap", mock.Anything).Return(errors.New("permission denied by policy"))
	s := NewSetter(mockOS)

	_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetBoth})

	werr := requireKind(t, err, KindUnknown)
	assert.Equal(t, "An unexpected error occurred: permission denied by policy", werr.Message)
	assert.Equal(t, "*errors.errorString: permission denied by policy", werr.Detail)
}

func TestSetWallpaper_PanicsBecomeUnknownError(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wall.png")

	t.Run("host", func(t *testing.T) {
		mockOS := newTargetedMock()
		mockOS.On("SetBitmapWithFlags", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("compositor crashed")
		})
		s := NewSetter(mockOS)

		_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetHome})

		werr := requireKind(t, err, KindUnknown)
		assert.Contains(t, werr.Message, "compositor crashed")
	})

	t.Run("decoder", func(t *testing.T) {
		s := NewSetter(newTargetedMock(), WithDecoder(DecoderFunc(func(string) (image.Image, error) {
			panic(errors.New("codec bug"))
		})))

		_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetHome})

		werr := requireKind(t, err, KindUnknown)
		assert.Equal(t, "An unexpected error occurred: panic: codec bug", werr.Message)
	})
}

func TestSetWallpaper_FileRemovedAfterCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeJPEG(t, dir, "wall.jpg")

	s := NewSetter(newTargetedMock())
	s.stat = func(name string) (fs.FileInfo, error) {
		info, err := os.Stat(name)
		require.NoError(t, os.Remove(filepath.Join(dir, "wall.jpg")))
		return info, err
	}

	_, err := s.SetWallpaper(Request{FilePath: path, Target: TargetHome})

	requireKind(t, err, KindDecodeFailed)
}
