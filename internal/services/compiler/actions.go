package compiler

import (
	"github.com/tweakforge/tweakforge/internal/models"
)

// ActionKind selects which emitter renders an action into script text.
type ActionKind string

const (
	// ActionRegistry sets one or more values under a registry path,
	// creating the path if absent and skipping values already correct.
	ActionRegistry ActionKind = "registry"
	// ActionService stops and disables a named Windows service.
	ActionService ActionKind = "service"
	// ActionPowerCfg applies one power-plan sub-setting to the active
	// scheme (both AC and DC indices).
	ActionPowerCfg ActionKind = "powercfg"
	// ActionTask disables a named scheduled task.
	ActionTask ActionKind = "scheduled_task"
	// ActionDNS points active physical adapters at the selected DNS
	// provider's servers.
	ActionDNS ActionKind = "dns"
	// ActionCommand runs a raw guarded command block.
	ActionCommand ActionKind = "command"
)

// RegistryValue is one name/type/value triple under an action's path.
type RegistryValue struct {
	Name  string
	Type  string // DWord, String, QWord
	Value string
}

// Action is one declarative idempotent step. Exactly one of the
// kind-specific field groups is populated, matching Kind.
type Action struct {
	Kind        ActionKind
	Description string

	// registry
	Path   string
	Values []RegistryValue

	// service
	Service string

	// powercfg
	Subgroup string
	Setting  string
	Index    string

	// scheduled_task
	TaskPath string
	TaskName string

	// command
	Script string
}

// actionTable maps every optimization key to its static actions. Keys
// with hardware-dependent actions (gpu_telemetry) or no section actions
// at all (restore_point, handled by the snapshot step) are absent here
// and resolved in actionsFor.
var actionTable = map[string][]Action{
	// --- system ---
	"mouse_accel": {
		{
			Kind:        ActionRegistry,
			Description: "Disable mouse acceleration",
			Path:        `HKCU:\Control Panel\Mouse`,
			Values: []RegistryValue{
				{Name: "MouseSpeed", Type: "String", Value: "0"},
				{Name: "MouseThreshold1", Type: "String", Value: "0"},
				{Name: "MouseThreshold2", Type: "String", Value: "0"},
			},
		},
	},
	"game_bar": {
		{
			Kind:        ActionRegistry,
			Description: "Disable Xbox Game Bar",
			Path:        `HKCU:\SOFTWARE\Microsoft\GameBar`,
			Values: []RegistryValue{
				{Name: "UseNexusForGameBarEnabled", Type: "DWord", Value: "0"},
				{Name: "ShowStartupPanel", Type: "DWord", Value: "0"},
			},
		},
	},
	"game_dvr": {
		{
			Kind:        ActionRegistry,
			Description: "Disable Game DVR capture",
			Path:        `HKCU:\SOFTWARE\Microsoft\Windows\CurrentVersion\GameDVR`,
			Values: []RegistryValue{
				{Name: "AppCaptureEnabled", Type: "DWord", Value: "0"},
			},
		},
		{
			Kind:        ActionRegistry,
			Description: "Disable Game DVR in game config store",
			Path:        `HKCU:\System\GameConfigStore`,
			Values: []RegistryValue{
				{Name: "GameDVR_Enabled", Type: "DWord", Value: "0"},
			},
		},
	},
	"sticky_keys": {
		{
			Kind:        ActionRegistry,
			Description: "Disable sticky keys shortcut prompt",
			Path:        `HKCU:\Control Panel\Accessibility\StickyKeys`,
			Values: []RegistryValue{
				{Name: "Flags", Type: "String", Value: "506"},
			},
		},
	},
	"hibernation": {
		{
			Kind:        ActionCommand,
			Description: "Disable hibernation",
			Script:      "powercfg /hibernate off | Out-Null",
		},
	},
	"fast_startup": {
		{
			Kind:        ActionRegistry,
			Description: "Disable fast startup",
			Path:        `HKLM:\SYSTEM\CurrentControlSet\Control\Session Manager\Power`,
			Values: []RegistryValue{
				{Name: "HiberbootEnabled", Type: "DWord", Value: "0"},
			},
		},
	},
	"sysmain": {
		{
			Kind:        ActionService,
			Description: "Disable SysMain (Superfetch) service",
			Service:     "SysMain",
		},
	},
	"windows_search": {
		{
			Kind:        ActionService,
			Description: "Disable Windows Search indexing service",
			Service:     "WSearch",
		},
	},
	"windows_update_disable": {
		{
			Kind:        ActionService,
			Description: "Disable Windows Update service",
			Service:     "wuauserv",
		},
	},

	// --- performance ---
	"game_mode": {
		{
			Kind:        ActionRegistry,
			Description: "Enable Game Mode",
			Path:        `HKCU:\SOFTWARE\Microsoft\GameBar`,
			Values: []RegistryValue{
				{Name: "AutoGameModeEnabled", Type: "DWord", Value: "1"},
			},
		},
	},
	"visual_effects": {
		{
			Kind:        ActionRegistry,
			Description: "Set visual effects to best performance",
			Path:        `HKCU:\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\VisualEffects`,
			Values: []RegistryValue{
				{Name: "VisualFXSetting", Type: "DWord", Value: "2"},
			},
		},
	},
	"fullscreen_optimizations": {
		{
			Kind:        ActionRegistry,
			Description: "Disable fullscreen optimizations",
			Path:        `HKCU:\System\GameConfigStore`,
			Values: []RegistryValue{
				{Name: "GameDVR_FSEBehaviorMode", Type: "DWord", Value: "2"},
				{Name: "GameDVR_HonorUserFSEBehaviorMode", Type: "DWord", Value: "1"},
			},
		},
	},
	"hardware_gpu_scheduling": {
		{
			Kind:        ActionRegistry,
			Description: "Enable hardware-accelerated GPU scheduling",
			Path:        `HKLM:\SYSTEM\CurrentControlSet\Control\GraphicsDrivers`,
			Values: []RegistryValue{
				{Name: "HwSchMode", Type: "DWord", Value: "2"},
			},
		},
	},
	"timer_resolution": {
		{
			Kind:        ActionRegistry,
			Description: "Allow global high timer resolution requests",
			Path:        `HKLM:\SYSTEM\CurrentControlSet\Control\Session Manager\kernel`,
			Values: []RegistryValue{
				{Name: "GlobalTimerResolutionRequests", Type: "DWord", Value: "1"},
			},
		},
	},
	"hpet": {
		{
			Kind:        ActionCommand,
			Description: "Remove forced platform clock (HPET)",
			Script:      "bcdedit /deletevalue useplatformclock 2>$null | Out-Null\n$global:LASTEXITCODE = 0",
		},
	},
	"memory_compression": {
		{
			Kind:        ActionCommand,
			Description: "Disable memory compression",
			Script: "if ((Get-MMAgent).MemoryCompression) {\n" +
				"    Disable-MMAgent -MemoryCompression\n" +
				"} else {\n" +
				"    Write-SkipResult 'memory compression already disabled'\n" +
				"}",
		},
	},
	"page_file_fixed": {
		{
			Kind:        ActionCommand,
			Description: "Pin page file to a fixed size",
			Script: "$cs = Get-CimInstance Win32_ComputerSystem\n" +
				"if ($cs.AutomaticManagedPagefile) {\n" +
				"    Set-CimInstance -InputObject $cs -Property @{ AutomaticManagedPagefile = $false }\n" +
				"    $pf = Get-CimInstance Win32_PageFileSetting\n" +
				"    if ($pf) {\n" +
				"        Set-CimInstance -InputObject $pf -Property @{ InitialSize = 16384; MaximumSize = 16384 }\n" +
				"    }\n" +
				"} else {\n" +
				"    Write-SkipResult 'page file already manually managed'\n" +
				"}",
		},
	},
	"mitigations_off": {
		{
			Kind:        ActionRegistry,
			Description: "Disable CPU security mitigations",
			Path:        `HKLM:\SYSTEM\CurrentControlSet\Control\Session Manager\Memory Management`,
			Values: []RegistryValue{
				{Name: "FeatureSettingsOverride", Type: "DWord", Value: "3"},
				{Name: "FeatureSettingsOverrideMask", Type: "DWord", Value: "3"},
			},
		},
	},

	// --- power ---
	"power_plan_high": {
		{
			Kind:        ActionCommand,
			Description: "Activate High Performance power plan",
			Script:      "powercfg /setactive 8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c | Out-Null",
		},
	},
	"power_plan_ultimate": {
		{
			Kind:        ActionCommand,
			Description: "Activate Ultimate Performance power plan",
			Script: "$ultimate = powercfg /list | Select-String 'e9a42b02-d5df-448d-aa00-03f14749eb61'\n" +
				"if (-not $ultimate) {\n" +
				"    powercfg /duplicatescheme e9a42b02-d5df-448d-aa00-03f14749eb61 | Out-Null\n" +
				"}\n" +
				"powercfg /setactive e9a42b02-d5df-448d-aa00-03f14749eb61 | Out-Null",
		},
	},
	"usb_suspend": {
		{
			Kind:        ActionPowerCfg,
			Description: "Disable USB selective suspend",
			Subgroup:    "2a737441-1930-4402-8d77-b2bebba308a3",
			Setting:     "48e6b7a6-50f5-4782-a5d4-53bb8f07e226",
			Index:       "0",
		},
	},
	"pcie_link_power": {
		{
			Kind:        ActionPowerCfg,
			Description: "Disable PCIe link state power management",
			Subgroup:    "501a4d13-42af-4429-9fd1-a8218c268e20",
			Setting:     "ee12f906-d277-404b-b6da-e5fa1a576df5",
			Index:       "0",
		},
	},

	// --- network ---
	"nagle": {
		{
			Kind:        ActionCommand,
			Description: "Disable Nagle's algorithm on all interfaces",
			Script: "$ifRoot = 'HKLM:\\SYSTEM\\CurrentControlSet\\Services\\Tcpip\\Parameters\\Interfaces'\n" +
				"Get-ChildItem $ifRoot | ForEach-Object {\n" +
				"    Set-ItemProperty -Path $_.PSPath -Name 'TcpAckFrequency' -Type DWord -Value 1\n" +
				"    Set-ItemProperty -Path $_.PSPath -Name 'TCPNoDelay' -Type DWord -Value 1\n" +
				"}",
		},
	},
	"network_throttling": {
		{
			Kind:        ActionRegistry,
			Description: "Disable network throttling index",
			Path:        `HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile`,
			Values: []RegistryValue{
				{Name: "NetworkThrottlingIndex", Type: "DWord", Value: "4294967295"},
				{Name: "SystemResponsiveness", Type: "DWord", Value: "10"},
			},
		},
	},
	"network_autotuning": {
		{
			Kind:        ActionCommand,
			Description: "Disable TCP receive window auto-tuning",
			Script:      "netsh int tcp set global autotuninglevel=disabled | Out-Null",
		},
	},

	// --- privacy ---
	"telemetry": {
		{
			Kind:        ActionRegistry,
			Description: "Set telemetry to minimum",
			Path:        `HKLM:\SOFTWARE\Policies\Microsoft\Windows\DataCollection`,
			Values: []RegistryValue{
				{Name: "AllowTelemetry", Type: "DWord", Value: "0"},
			},
		},
		{
			Kind:        ActionService,
			Description: "Disable connected user experiences service",
			Service:     "DiagTrack",
		},
		{
			Kind:        ActionTask,
			Description: "Disable compatibility telemetry task",
			TaskPath:    `\Microsoft\Windows\Application Experience\`,
			TaskName:    "Microsoft Compatibility Appraiser",
		},
	},
	"advertising_id": {
		{
			Kind:        ActionRegistry,
			Description: "Disable advertising ID",
			Path:        `HKCU:\SOFTWARE\Microsoft\Windows\CurrentVersion\AdvertisingInfo`,
			Values: []RegistryValue{
				{Name: "Enabled", Type: "DWord", Value: "0"},
			},
		},
	},
	"activity_history": {
		{
			Kind:        ActionRegistry,
			Description: "Disable activity history collection",
			Path:        `HKLM:\SOFTWARE\Policies\Microsoft\Windows\System`,
			Values: []RegistryValue{
				{Name: "EnableActivityFeed", Type: "DWord", Value: "0"},
				{Name: "PublishUserActivities", Type: "DWord", Value: "0"},
				{Name: "UploadUserActivities", Type: "DWord", Value: "0"},
			},
		},
	},
	"location_tracking": {
		{
			Kind:        ActionRegistry,
			Description: "Deny location access",
			Path:        `HKLM:\SOFTWARE\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\location`,
			Values: []RegistryValue{
				{Name: "Value", Type: "String", Value: "Deny"},
			},
		},
	},
	"cortana": {
		{
			Kind:        ActionRegistry,
			Description: "Disable Cortana",
			Path:        `HKLM:\SOFTWARE\Policies\Microsoft\Windows\Windows Search`,
			Values: []RegistryValue{
				{Name: "AllowCortana", Type: "DWord", Value: "0"},
			},
		},
	},
	"defender_realtime_off": {
		{
			Kind:        ActionCommand,
			Description: "Disable Defender real-time protection",
			Script:      "Set-MpPreference -DisableRealtimeMonitoring $true",
		},
	},

	// --- audio ---
	"audio_enhancements": {
		{
			Kind:        ActionRegistry,
			Description: "Disable audio enhancement processing",
			Path:        `HKCU:\SOFTWARE\Microsoft\Multimedia\Audio\DeviceFx`,
			Values: []RegistryValue{
				{Name: "EnableDeviceEffects", Type: "DWord", Value: "0"},
			},
		},
	},
	"audio_ducking": {
		{
			Kind:        ActionRegistry,
			Description: "Disable communication activity ducking",
			Path:        `HKCU:\SOFTWARE\Microsoft\Multimedia\Audio`,
			Values: []RegistryValue{
				{Name: "UserDuckingPreference", Type: "DWord", Value: "3"},
			},
		},
	},
	"audio_exclusive": {
		{
			Kind:        ActionRegistry,
			Description: "Allow applications exclusive audio control",
			Path:        `HKCU:\SOFTWARE\Microsoft\Multimedia\Audio\DefaultEndpoint`,
			Values: []RegistryValue{
				{Name: "AllowExclusiveMode", Type: "DWord", Value: "1"},
			},
		},
	},
}

// actionsFor resolves the actions for one optimization key against the
// hardware profile and DNS selection. A key with no actions anywhere is
// silently skipped, that keeps the compiler forward-compatible with
// catalog entries added ahead of it.
func actionsFor(key string, hardware models.HardwareProfile, dns dnsEntry) []Action {
	switch key {
	case "dns_servers":
		return []Action{{
			Kind:        ActionDNS,
			Description: "Set DNS servers to " + dns.Label,
		}}
	case "gpu_telemetry":
		// Only NVIDIA ships a discrete telemetry service.
		if hardware.GPU == models.GPUNvidia {
			return []Action{{
				Kind:        ActionService,
				Description: "Disable NVIDIA telemetry service",
				Service:     "NvTelemetryContainer",
			}}
		}
		return nil
	case "core_parking":
		desc := "Keep all CPU cores unparked"
		if hardware.CPU == models.CPUAmdX3D {
			desc = "Keep all CPU cores unparked (X3D cache cores included)"
		}
		return []Action{{
			Kind:        ActionPowerCfg,
			Description: desc,
			Subgroup:    "54533251-82be-4824-96c1-47b60b740d00",
			Setting:     "0cc5b647-c1df-4637-891a-dec35c318583",
			Index:       "100",
		}}
	}
	return actionTable[key]
}
