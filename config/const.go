package config

import "strings"

// AppVersion is the version of the bridge, set at build time.
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "Wallora"

// AppID is the reverse-DNS identifier used for the preferences store.
const AppID = "com.hexaghost.wallora"

// ChannelName is the method channel the UI layer uses to reach the bridge.
const ChannelName = "com.hexaghost.wallora/wallpaper_setter"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// WallpaperSubDir is where persisted wallpapers live, below the app's config or cache dir.
var WallpaperSubDir = "wallpapers"

// ListenHost is the only interface the channel transport binds to.
const ListenHost = "127.0.0.1"

// Defaults for the channel transport.
const (
	DefaultPort           = 49453
	DefaultRequestsPerSec = 2.0
	DefaultBurst          = 4
)
