package catalog

// presets are curated base selections a user can start from. Preset
// names are stable-id registered and shareable; the sets themselves may
// evolve between releases. Ludicrous keys are never part of a preset,
// they always require an explicit per-session acknowledgement.
var presets = map[string][]string{
	"esports": {
		"mouse_accel",
		"game_bar",
		"game_dvr",
		"game_mode",
		"fullscreen_optimizations",
		"power_plan_ultimate",
		"usb_suspend",
		"core_parking",
		"nagle",
		"network_throttling",
		"telemetry",
		"advertising_id",
		"audio_exclusive",
	},
	"streaming": {
		"mouse_accel",
		"game_mode",
		"hardware_gpu_scheduling",
		"power_plan_high",
		"telemetry",
		"advertising_id",
		"audio_ducking",
	},
	"balanced": {
		"restore_point",
		"mouse_accel",
		"game_bar",
		"game_dvr",
		"game_mode",
		"power_plan_high",
		"telemetry",
		"advertising_id",
	},
}

// presetOrder fixes the display order of preset names.
var presetOrder = []string{"esports", "streaming", "balanced"}

// PresetNames returns all preset names in display order.
func PresetNames() []string {
	return presetOrder
}

// PresetKeys returns the optimization keys of a named preset, or false
// if the name is unknown. The returned slice is shared; callers must
// not modify it.
func PresetKeys(name string) ([]string, bool) {
	keys, ok := presets[name]
	return keys, ok
}
