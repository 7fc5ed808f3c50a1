package catalog

// OptimizationDef describes one named tweak: its permanent key, risk
// tier, script category, and whether a fresh build starts with it
// checked. Keys are never reused once assigned to a meaning.
//
// Ludicrous-tier defs must never be default-checked and never appear in
// a preset; both invariants are asserted in tests.
type OptimizationDef struct {
	Key            string   `json:"key"`
	Tier           Tier     `json:"tier"`
	Category       Category `json:"category"`
	DefaultChecked bool     `json:"default_checked"`
	Name           string   `json:"name"`
	Description    string   `json:"description"` // markdown, rendered for tooltips
}

// definitions is the source of truth for every optimization, in
// declaration order. The compiler iterates this order (not selection
// order) so identical selections always produce identical scripts.
var definitions = []OptimizationDef{
	// --- system ---
	{
		Key: "restore_point", Tier: TierSafe, Category: CategorySystem, DefaultChecked: true,
		Name:        "Create restore point",
		Description: "Creates a system restore point before any changes are applied. Skipped if one was already created in the **last 24 hours**.",
	},
	{
		Key: "mouse_accel", Tier: TierSafe, Category: CategorySystem, DefaultChecked: true,
		Name:        "Disable mouse acceleration",
		Description: "Turns off *Enhance pointer precision* so mouse distance maps 1:1 to cursor distance.",
	},
	{
		Key: "game_bar", Tier: TierSafe, Category: CategorySystem, DefaultChecked: true,
		Name:        "Disable Xbox Game Bar",
		Description: "Disables the Game Bar overlay and its background capture processes.",
	},
	{
		Key: "game_dvr", Tier: TierSafe, Category: CategorySystem, DefaultChecked: true,
		Name:        "Disable Game DVR",
		Description: "Disables background game recording, which costs GPU time even when idle.",
	},
	{
		Key: "sticky_keys", Tier: TierSafe, Category: CategorySystem,
		Name:        "Disable sticky keys prompt",
		Description: "Stops the sticky keys dialog from appearing when Shift is pressed five times mid-game.",
	},
	{
		Key: "hibernation", Tier: TierCaution, Category: CategorySystem,
		Name:        "Disable hibernation",
		Description: "Removes `hiberfil.sys` and disables hibernation. Frees disk space but removes the hybrid-sleep option.",
	},
	{
		Key: "fast_startup", Tier: TierCaution, Category: CategorySystem,
		Name:        "Disable fast startup",
		Description: "Forces full shutdowns instead of the hybrid boot that can leave drivers in a stale state.",
	},
	{
		Key: "sysmain", Tier: TierCaution, Category: CategorySystem,
		Name:        "Disable SysMain (Superfetch)",
		Description: "Stops the SysMain prefetch service. Can reduce background disk churn on SSD-only systems.",
	},
	{
		Key: "windows_search", Tier: TierRisky, Category: CategorySystem,
		Name:        "Disable Windows Search indexing",
		Description: "Stops the search indexer service entirely. Start-menu search becomes noticeably slower.",
	},
	{
		Key: "windows_update_disable", Tier: TierLudicrous, Category: CategorySystem,
		Name:        "Disable Windows Update",
		Description: "Disables the update service outright. **You stop receiving security patches.** Only for airgapped or tournament machines.",
	},

	// --- performance ---
	{
		Key: "game_mode", Tier: TierSafe, Category: CategoryPerformance, DefaultChecked: true,
		Name:        "Enable Game Mode",
		Description: "Enables Windows Game Mode so the scheduler prioritizes the foreground game.",
	},
	{
		Key: "visual_effects", Tier: TierSafe, Category: CategoryPerformance,
		Name:        "Performance visual effects",
		Description: "Sets visual effects to *best performance*, disabling animations and transparency.",
	},
	{
		Key: "gpu_telemetry", Tier: TierSafe, Category: CategoryPerformance,
		Name:        "Disable GPU telemetry",
		Description: "Disables the GPU vendor's telemetry service where one exists for the detected GPU.",
	},
	{
		Key: "fullscreen_optimizations", Tier: TierCaution, Category: CategoryPerformance,
		Name:        "Disable fullscreen optimizations",
		Description: "Globally disables fullscreen optimizations, restoring true exclusive fullscreen behavior.",
	},
	{
		Key: "hardware_gpu_scheduling", Tier: TierCaution, Category: CategoryPerformance,
		Name:        "Hardware-accelerated GPU scheduling",
		Description: "Enables HAGS. Helps on recent GPUs, can regress frame pacing on older drivers.",
	},
	{
		Key: "timer_resolution", Tier: TierRisky, Category: CategoryPerformance,
		Name:        "Force high timer resolution",
		Description: "Requests a 0.5ms global timer resolution. Lower input latency at the cost of higher idle power draw.",
	},
	{
		Key: "hpet", Tier: TierRisky, Category: CategoryPerformance,
		Name:        "Disable HPET",
		Description: "Disables the high-precision event timer device. Benchmark-dependent; can hurt as often as it helps.",
	},
	{
		Key: "memory_compression", Tier: TierRisky, Category: CategoryPerformance,
		Name:        "Disable memory compression",
		Description: "Disables RAM compression. Only sensible with 32GB+ where paging pressure is rare.",
	},
	{
		Key: "page_file_fixed", Tier: TierRisky, Category: CategoryPerformance,
		Name:        "Fixed-size page file",
		Description: "Pins the page file to a fixed size to avoid run-time growth stutter.",
	},
	{
		Key: "mitigations_off", Tier: TierLudicrous, Category: CategoryPerformance,
		Name:        "Disable CPU security mitigations",
		Description: "Turns off Spectre/Meltdown mitigations for a single-digit FPS gain. **This reopens real CPU vulnerabilities.**",
	},

	// --- power ---
	{
		Key: "power_plan_high", Tier: TierSafe, Category: CategoryPower, DefaultChecked: true,
		Name:        "High performance power plan",
		Description: "Activates the High Performance power plan.",
	},
	{
		Key: "power_plan_ultimate", Tier: TierCaution, Category: CategoryPower,
		Name:        "Ultimate performance power plan",
		Description: "Unhides and activates the Ultimate Performance plan. Meaningfully higher idle power draw.",
	},
	{
		Key: "usb_suspend", Tier: TierCaution, Category: CategoryPower,
		Name:        "Disable USB selective suspend",
		Description: "Stops USB devices from being power-suspended, avoiding wake-up latency on mice and audio interfaces.",
	},
	{
		Key: "pcie_link_power", Tier: TierSafe, Category: CategoryPower,
		Name:        "Disable PCIe link power management",
		Description: "Keeps PCIe links at full power so the GPU never waits on a link wake.",
	},
	{
		Key: "core_parking", Tier: TierCaution, Category: CategoryPower,
		Name:        "Disable core parking",
		Description: "Keeps all CPU cores unparked. Most useful on X3D parts where parked cache cores cost frame time.",
	},

	// --- network ---
	{
		Key: "dns_servers", Tier: TierSafe, Category: CategoryNetwork,
		Name:        "Set DNS servers",
		Description: "Points active adapters at the selected public DNS provider.",
	},
	{
		Key: "nagle", Tier: TierCaution, Category: CategoryNetwork,
		Name:        "Disable Nagle's algorithm",
		Description: "Sets `TcpAckFrequency` and `TCPNoDelay` per interface. Helps some older game netcode, irrelevant for most modern titles.",
	},
	{
		Key: "network_throttling", Tier: TierCaution, Category: CategoryNetwork,
		Name:        "Disable network throttling",
		Description: "Disables the multimedia-class network throttling index.",
	},
	{
		Key: "network_autotuning", Tier: TierRisky, Category: CategoryNetwork,
		Name:        "Disable TCP auto-tuning",
		Description: "Disables receive-window auto-tuning. Can cap throughput on fast links; only for specific latency problems.",
	},

	// --- privacy ---
	{
		Key: "telemetry", Tier: TierSafe, Category: CategoryPrivacy, DefaultChecked: true,
		Name:        "Minimize telemetry",
		Description: "Sets diagnostic data collection to the minimum and disables the connected user experiences service.",
	},
	{
		Key: "advertising_id", Tier: TierSafe, Category: CategoryPrivacy, DefaultChecked: true,
		Name:        "Disable advertising ID",
		Description: "Disables the per-user advertising identifier.",
	},
	{
		Key: "activity_history", Tier: TierSafe, Category: CategoryPrivacy,
		Name:        "Disable activity history",
		Description: "Stops Windows from collecting and uploading activity history.",
	},
	{
		Key: "location_tracking", Tier: TierSafe, Category: CategoryPrivacy,
		Name:        "Disable location tracking",
		Description: "Disables the location service and sensor state.",
	},
	{
		Key: "cortana", Tier: TierCaution, Category: CategoryPrivacy,
		Name:        "Disable Cortana",
		Description: "Disables Cortana via policy. Also affects some search-box web results.",
	},
	{
		Key: "defender_realtime_off", Tier: TierLudicrous, Category: CategoryPrivacy,
		Name:        "Disable Defender real-time protection",
		Description: "Turns off real-time antivirus scanning. **Your machine is unprotected while this is active.**",
	},

	// --- audio ---
	{
		Key: "audio_enhancements", Tier: TierSafe, Category: CategoryAudio,
		Name:        "Disable audio enhancements",
		Description: "Disables system-wide audio enhancement processing on playback devices.",
	},
	{
		Key: "audio_ducking", Tier: TierSafe, Category: CategoryAudio,
		Name:        "Disable communication ducking",
		Description: "Stops Windows from lowering game audio when a voice call is active.",
	},
	{
		Key: "audio_exclusive", Tier: TierCaution, Category: CategoryAudio,
		Name:        "Allow exclusive mode audio",
		Description: "Lets applications take exclusive control of audio devices for lower latency output.",
	},
}

// index is built once from definitions for O(1) key lookup.
var index = func() map[string]*OptimizationDef {
	m := make(map[string]*OptimizationDef, len(definitions))
	for i := range definitions {
		m[definitions[i].Key] = &definitions[i]
	}
	return m
}()

// Definitions returns every optimization in declaration order. The
// returned slice is shared; callers must not modify it.
func Definitions() []OptimizationDef {
	return definitions
}

// Get returns the definition for a key, if one exists.
func Get(key string) (OptimizationDef, bool) {
	def, ok := index[key]
	if !ok {
		return OptimizationDef{}, false
	}
	return *def, true
}

// Lookup returns all definitions matching a tier and category, in
// declaration order.
func Lookup(tier Tier, category Category) []OptimizationDef {
	var out []OptimizationDef
	for _, def := range definitions {
		if def.Tier == tier && def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// CategoriesForTier returns the categories that contain at least one
// definition of the given tier, in section order.
func CategoriesForTier(tier Tier) []Category {
	seen := make(map[Category]bool)
	for _, def := range definitions {
		if def.Tier == tier {
			seen[def.Category] = true
		}
	}
	var out []Category
	for _, cat := range Categories() {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// DefaultKeys returns the keys a fresh build starts with, in
// declaration order.
func DefaultKeys() []string {
	var out []string
	for _, def := range definitions {
		if def.DefaultChecked {
			out = append(out, def.Key)
		}
	}
	return out
}
