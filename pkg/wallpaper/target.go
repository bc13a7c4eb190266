package wallpaper

// Target selects which screen surface(s) receive a wallpaper.
// Values outside the known range are valid and resolve to the home screen.
type Target int

// Known wallpaper targets. The values match the integers sent over the method channel.
const (
	TargetHome Target = 0
	TargetLock Target = 1
	TargetBoth Target = 2
)

// String returns a readable name for the target.
func (t Target) String() string {
	switch t {
	case TargetHome:
		return "home"
	case TargetLock:
		return "lock"
	case TargetBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Flag is the bit set understood by a host that can set home and lock wallpapers independently.
type Flag int

// Host wallpaper flags.
const (
	FlagSystem Flag = 1 << 0
	FlagLock   Flag = 1 << 1
)

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// Flags maps a target to the host flag set. Unknown targets fall back to FlagSystem.
func (t Target) Flags() Flag {
	switch t {
	case TargetHome:
		return FlagSystem
	case TargetLock:
		return FlagLock
	case TargetBoth:
		return FlagSystem | FlagLock
	default:
		return FlagSystem
	}
}
