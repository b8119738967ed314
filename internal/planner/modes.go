package planner

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeSchedule UIMode = iota // Weekly plan, start a day's workout
	UIModeProgress               // Stats and recent weeks
	UIModeSettings               // Preferences and plan generation
	UIModeSession                // A workout in progress; entered by starting a day
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode, 0 when none
}

// AllUIModes defines the UI modes in order. Session has no key: it is only
// reachable by starting a workout.
var AllUIModes = []UIModeInfo{
	{Mode: UIModeSchedule, DisplayName: "Schedule", KeyBinding: '1'},
	{Mode: UIModeProgress, DisplayName: "Progress", KeyBinding: '2'},
	{Mode: UIModeSettings, DisplayName: "Settings", KeyBinding: '3'},
	{Mode: UIModeSession, DisplayName: "Workout Session"},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	if key == 0 {
		return 0, false
	}
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}
