package stableid

import "sync"

// Source-of-truth id assignments. Append-only across releases: new
// values get the next free id, removed values keep their id as a
// retired row. Never renumber, decoded tokens from old releases depend
// on every assignment below.

var cpuEntries = []Entry{
	{ID: 1, Key: "amd_x3d"},
	{ID: 2, Key: "amd"},
	{ID: 3, Key: "intel"},
}

var gpuEntries = []Entry{
	{ID: 1, Key: "nvidia"},
	{ID: 2, Key: "amd"},
	{ID: 3, Key: "intel"},
}

var dnsEntries = []Entry{
	{ID: 1, Key: "cloudflare"},
	{ID: 2, Key: "google"},
	{ID: 3, Key: "quad9"},
	{ID: 4, Key: "adguard"},
}

var peripheralEntries = []Entry{
	{ID: 1, Key: "logitech"},
	{ID: 2, Key: "razer"},
	{ID: 3, Key: "corsair"},
	{ID: 4, Key: "steelseries"},
	{ID: 5, Key: "hyperx"},
	{ID: 6, Key: "asus"},
}

var monitorEntries = []Entry{
	{ID: 1, Key: "lg"},
	{ID: 2, Key: "samsung"},
	{ID: 3, Key: "dell"},
	{ID: 4, Key: "benq"},
	{ID: 5, Key: "gigabyte"},
	{ID: 6, Key: "viotek", RetiredAt: "2025-03-18"},
	{ID: 7, Key: "aoc"},
}

var presetEntries = []Entry{
	{ID: 1, Key: "esports"},
	{ID: 2, Key: "streaming"},
	{ID: 3, Key: "balanced"},
}

var optimizationEntries = []Entry{
	{ID: 1, Key: "restore_point"},
	{ID: 2, Key: "mouse_accel"},
	{ID: 3, Key: "game_bar"},
	{ID: 4, Key: "game_dvr"},
	{ID: 5, Key: "game_mode"},
	{ID: 6, Key: "power_plan_high"},
	{ID: 7, Key: "telemetry"},
	{ID: 8, Key: "advertising_id"},
	{ID: 9, Key: "hibernation"},
	{ID: 10, Key: "fast_startup"},
	{ID: 11, Key: "windows_search"},
	{ID: 12, Key: "sysmain"},
	{ID: 13, Key: "visual_effects"},
	{ID: 14, Key: "drivers_cleanup", RetiredAt: "2025-02-02"},
	{ID: 15, Key: "fullscreen_optimizations"},
	{ID: 16, Key: "hardware_gpu_scheduling"},
	{ID: 17, Key: "timer_resolution"},
	{ID: 18, Key: "hpet"},
	{ID: 19, Key: "memory_compression"},
	{ID: 20, Key: "page_file_fixed"},
	{ID: 21, Key: "power_plan_ultimate"},
	{ID: 22, Key: "usb_suspend"},
	{ID: 23, Key: "pcie_link_power"},
	{ID: 24, Key: "core_parking"},
	{ID: 25, Key: "dns_servers"},
	{ID: 26, Key: "nagle"},
	{ID: 27, Key: "tcp_chimney", RetiredAt: "2025-04-11"},
	{ID: 28, Key: "network_throttling"},
	{ID: 29, Key: "network_autotuning"},
	{ID: 30, Key: "activity_history"},
	{ID: 31, Key: "location_tracking"},
	{ID: 32, Key: "cortana"},
	{ID: 33, Key: "audio_enhancements"},
	{ID: 34, Key: "audio_ducking"},
	{ID: 35, Key: "audio_exclusive"},
	{ID: 36, Key: "sticky_keys"},
	{ID: 37, Key: "gpu_telemetry"},
	{ID: 38, Key: "mitigations_off"},
	{ID: 39, Key: "defender_realtime_off"},
	{ID: 40, Key: "windows_update_disable"},
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
	defaultErr      error
)

// Default returns the process-wide registry built from the tables
// above. The first call builds and audits it; an audit failure is
// returned to the caller (app startup treats it as fatal).
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = New(map[Domain][]Entry{
			DomainCPU:          cpuEntries,
			DomainGPU:          gpuEntries,
			DomainDNS:          dnsEntries,
			DomainPeripheral:   peripheralEntries,
			DomainMonitor:      monitorEntries,
			DomainPreset:       presetEntries,
			DomainOptimization: optimizationEntries,
		})
	})
	return defaultRegistry, defaultErr
}
