package wallpaper

import (
	"image"

	"github.com/stretchr/testify/mock"
)

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) SupportsTargetedWallpaper() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockOS) SetBitmapWithFlags(img image.Image, cropHint *image.Rectangle, allowBackup bool, flags Flag) error {
	args := m.Called(img, cropHint, allowBackup, flags)
	return args.Error(0)
}

func (m *MockOS) SetBitmap(img image.Image) error {
	args := m.Called(img)
	return args.Error(0)
}

// MockDecoder is a mock implementation of the Decoder interface.
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(path string) (image.Image, error) {
	args := m.Called(path)
	img, _ := args.Get(0).(image.Image)
	return img, args.Error(1)
}
