package channel

import (
	"bytes"
	"encoding/json"

	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/pkg/wallpaper"
)

// MethodSetWallpaper is the only method the bridge implements.
const MethodSetWallpaper = "setWallpaper"

// Call is a method call decoded into its typed variant.
type Call interface {
	MethodName() string
}

// SetWallpaperCall carries a fully validated setWallpaper request.
type SetWallpaperCall struct {
	Request wallpaper.Request
}

// MethodName returns "setWallpaper".
func (SetWallpaperCall) MethodName() string { return MethodSetWallpaper }

// UnknownCall is any method the bridge does not implement.
type UnknownCall struct {
	Method string
}

// MethodName returns the requested method.
func (c UnknownCall) MethodName() string { return c.Method }

type setWallpaperArgs struct {
	FilePath *string `json:"filePath"`
	Type     *int    `json:"type"`
}

// DecodeCall turns the raw envelope into a typed call. Arguments are checked
// here, once, so handlers only ever see complete requests.
func DecodeCall(mc MethodCall) (Call, *ChannelError) {
	if mc.Channel != "" && mc.Channel != config.ChannelName {
		return UnknownCall{Method: mc.Method}, nil
	}

	switch mc.Method {
	case MethodSetWallpaper:
		var args setWallpaperArgs
		raw := bytes.TrimSpace(mc.Arguments)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, invalidArgument()
			}
		}
		if args.FilePath == nil || args.Type == nil {
			return nil, invalidArgument()
		}
		return SetWallpaperCall{Request: wallpaper.Request{
			FilePath: *args.FilePath,
			Target:   wallpaper.Target(*args.Type),
		}}, nil
	default:
		return UnknownCall{Method: mc.Method}, nil
	}
}

func invalidArgument() *ChannelError {
	return NewChannelError(wallpaper.KindInvalidArgument.Code(), "File path or type is null")
}
