package channel

import (
	"errors"

	"github.com/hexaghost/wallora/pkg/wallpaper"
	"github.com/hexaghost/wallora/util/log"
)

// WallpaperSetter is the bridge operation the dispatcher calls.
type WallpaperSetter interface {
	SetWallpaper(req wallpaper.Request) (string, error)
}

// Dispatcher routes decoded calls to the bridge and builds the reply.
type Dispatcher struct {
	setter WallpaperSetter
}

// NewDispatcher creates a Dispatcher for the given setter.
func NewDispatcher(setter WallpaperSetter) *Dispatcher {
	return &Dispatcher{setter: setter}
}

// Dispatch handles one call. It never fails: every outcome is a Reply.
func (d *Dispatcher) Dispatch(mc MethodCall) Reply {
	call, cerr := DecodeCall(mc)
	if cerr != nil {
		log.Printf("channel: %s %s rejected: %v", mc.ID, mc.Method, cerr)
		return Failure(mc.ID, cerr)
	}

	switch c := call.(type) {
	case SetWallpaperCall:
		msg, err := d.setter.SetWallpaper(c.Request)
		if err != nil {
			return Failure(mc.ID, toChannelError(err))
		}
		return Success(mc.ID, msg)
	default:
		log.Debugf("channel: method %q not implemented", call.MethodName())
		return NotImplemented(mc.ID)
	}
}

func toChannelError(err error) *ChannelError {
	var werr *wallpaper.Error
	if !errors.As(err, &werr) {
		return &ChannelError{
			Code:    wallpaper.KindUnknown.Code(),
			Message: "An unexpected error occurred: " + err.Error(),
			Details: err.Error(),
		}
	}
	cerr := NewChannelError(werr.Code(), werr.Message)
	if werr.Detail != "" {
		cerr.Details = werr.Detail
	}
	return cerr
}
