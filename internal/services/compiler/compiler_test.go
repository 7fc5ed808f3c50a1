package compiler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/catalog"
	"github.com/tweakforge/tweakforge/internal/models"
)

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(arbor.NewLogger())
}

func testCatalog() models.SoftwareCatalog {
	return models.SoftwareCatalog{
		"discord":       {InstallerID: "Discord.Discord", Name: "Discord", Category: "communication"},
		"steam":         {InstallerID: "Valve.Steam", Name: "Steam", Category: "launchers"},
		"obs-studio":    {InstallerID: "OBSProject.OBSStudio", Name: "OBS Studio", Category: "streaming"},
		"logitech-ghub": {InstallerID: "Logitech.GHUB", Name: "Logitech G HUB", Category: "peripherals"},
		"benq-display-pilot": {
			InstallerID: "BenQ.DisplayPilot", Name: "BenQ Display Pilot", Category: "monitors",
		},
	}
}

// sectionOf extracts the text between a section header and the next
// section marker.
func sectionOf(t *testing.T, script, name string) string {
	t.Helper()
	header := "# ====== " + name + " ======\n"
	start := strings.Index(script, header)
	require.GreaterOrEqual(t, start, 0, "script has no %s section", name)
	rest := script[start+len(header):]
	end := strings.Index(rest, "# ====== ")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}

func TestCompileDeterminism(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Hardware: models.HardwareProfile{
			CPU:         models.CPUAmdX3D,
			GPU:         models.GPUNvidia,
			Peripherals: []models.PeripheralBrand{models.PeripheralLogitech},
		},
		Optimizations: []string{"mouse_accel", "game_bar", "nagle", "telemetry"},
		Packages:      []string{"discord", "steam"},
	}

	first, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)
	second, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestCompileOrderIndependence(t *testing.T) {
	svc := newTestService()
	forward := models.SelectionState{
		Optimizations: []string{"mouse_accel", "game_bar", "telemetry", "nagle", "audio_ducking"},
		Packages:      []string{"steam", "discord"},
	}
	reversed := models.SelectionState{
		Optimizations: []string{"audio_ducking", "nagle", "telemetry", "game_bar", "mouse_accel"},
		Packages:      []string{"discord", "steam"},
	}

	a, err := svc.CompileAt(forward, testCatalog(), models.DNSGoogle, "build_test", testTime)
	require.NoError(t, err)
	b, err := svc.CompileAt(reversed, testCatalog(), models.DNSGoogle, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
}

func TestMouseAccelScenario(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{Optimizations: []string{"mouse_accel"}}

	script, err := svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, "safe", script.RiskProfile)
	assert.False(t, script.RestorePointRequired)

	system := sectionOf(t, script.Text, "system")
	assert.Equal(t, 1, strings.Count(system, "Invoke-TweakStep"))
	assert.Contains(t, system, "MouseSpeed")
}

func TestLudicrousBannerPrecedesEverything(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Optimizations: []string{"mouse_accel", "defender_realtime_off"},
	}

	script, err := svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, "ludicrous", script.RiskProfile)
	assert.True(t, strings.HasPrefix(script.Text, "# !!!"))
	assert.Contains(t, script.Text, "LUDICROUS-TIER")
}

func TestNoBannerWithoutLudicrousKeys(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{Optimizations: []string{"timer_resolution"}}

	script, err := svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, "risky", script.RiskProfile)
	assert.NotContains(t, script.Text, "LUDICROUS-TIER")
	assert.True(t, strings.HasPrefix(script.Text, "# ====="))
}

func TestRestorePointEmission(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name          string
		optimizations []string
		wantStep      bool
		wantRequired  bool
	}{
		{"safe only, no restore key", []string{"mouse_accel"}, false, false},
		{"explicit restore key", []string{"mouse_accel", "restore_point"}, true, false},
		{"caution tier forces step", []string{"hibernation"}, true, true},
		{"risky tier forces step", []string{"hpet"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := svc.CompileAt(models.SelectionState{Optimizations: tt.optimizations},
				models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRequired, script.RestorePointRequired)
			if tt.wantStep {
				assert.Contains(t, script.Text, "Create system restore point")
			} else {
				assert.NotContains(t, script.Text, "Create system restore point")
			}
		})
	}
}

func TestMissingPackagesAreAnnotatedNotFatal(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Packages: []string{"discord", "no-such-package", "another-missing"},
	}

	script, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, []string{"another-missing", "no-such-package"}, script.MissingPackages)
	assert.Contains(t, script.Text, "not found in the software catalog")
	assert.Contains(t, script.Text, "#   - no-such-package")
	// The missing key never becomes an install line.
	assert.NotContains(t, script.Text, "Id = 'no-such-package'")
	assert.Contains(t, script.Text, "Discord.Discord")
}

func TestBrandImpliedPackages(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Hardware: models.HardwareProfile{
			// logitech maps to a catalog package, asus maps to nothing,
			// and razer maps to a key the test catalog doesn't carry.
			Peripherals:     []models.PeripheralBrand{models.PeripheralLogitech, models.PeripheralAsus, models.PeripheralRazer},
			MonitorSoftware: []models.MonitorBrand{models.MonitorBenQ, models.MonitorGigabyte},
		},
	}

	script, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, []string{"benq-display-pilot", "logitech-ghub"}, script.Packages)
	// Brand mapping failures are silent: no missing-package note.
	assert.Empty(t, script.MissingPackages)
	assert.NotContains(t, script.Text, "razer-synapse")
}

func TestInstallSectionSortedByDisplayName(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Packages: []string{"steam", "obs-studio", "discord"},
	}

	script, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	discord := strings.Index(script.Text, "Name = 'Discord'")
	obs := strings.Index(script.Text, "Name = 'OBS Studio'")
	steam := strings.Index(script.Text, "Name = 'Steam'")
	require.True(t, discord >= 0 && obs >= 0 && steam >= 0)
	assert.Less(t, discord, obs)
	assert.Less(t, obs, steam)
}

func TestUnknownOptimizationKeysAreIgnored(t *testing.T) {
	svc := newTestService()
	with := models.SelectionState{Optimizations: []string{"mouse_accel", "key_from_the_future"}}
	without := models.SelectionState{Optimizations: []string{"mouse_accel"}}

	a, err := svc.CompileAt(with, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)
	b, err := svc.CompileAt(without, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	assert.Equal(t, b.Text, a.Text)
}

func TestDNSSelection(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{Optimizations: []string{"dns_servers"}}

	script, err := svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSQuad9, "build_test", testTime)
	require.NoError(t, err)
	network := sectionOf(t, script.Text, "network")
	assert.Contains(t, network, "9.9.9.9")
	assert.Contains(t, network, "Quad9")

	// Unknown providers fall back to Cloudflare.
	script, err = svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSProvider("bogus"), "build_test", testTime)
	require.NoError(t, err)
	assert.Contains(t, script.Text, "1.1.1.1")
}

func TestGPUTelemetryIsHardwareGated(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Hardware:      models.HardwareProfile{GPU: models.GPUNvidia},
		Optimizations: []string{"gpu_telemetry"},
	}

	script, err := svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)
	assert.Contains(t, script.Text, "NvTelemetryContainer")

	selection.Hardware.GPU = models.GPUAmd
	script, err = svc.CompileAt(selection, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)
	assert.NotContains(t, script.Text, "NvTelemetryContainer")
}

func TestSectionsAlwaysEmittedInFixedOrder(t *testing.T) {
	svc := newTestService()

	script, err := svc.CompileAt(models.SelectionState{}, models.SoftwareCatalog{}, models.DNSCloudflare, "build_test", testTime)
	require.NoError(t, err)

	last := -1
	for _, name := range []string{"system", "performance", "power", "network", "privacy", "audio", "software install"} {
		idx := strings.Index(script.Text, "# ====== "+name+" ======")
		require.GreaterOrEqual(t, idx, 0, "missing section %s", name)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.Contains(t, script.Text, "# (no system tweaks selected)")
}

// Every catalog key except restore_point (emitted as the snapshot
// step, not a section action) must resolve to at least one action, so
// catalog entries added ahead of the emitter get caught here instead
// of silently producing empty sections.
func TestEveryCatalogKeyHasActions(t *testing.T) {
	hardware := models.HardwareProfile{CPU: models.CPUAmdX3D, GPU: models.GPUNvidia}
	dns := resolveDNS(models.DNSCloudflare)

	for _, def := range catalog.Definitions() {
		if def.Key == "restore_point" {
			continue
		}
		assert.NotEmpty(t, actionsFor(def.Key, hardware, dns), "no actions for %s", def.Key)
	}
}

func TestBuildConfigBlock(t *testing.T) {
	svc := newTestService()
	selection := models.SelectionState{
		Hardware:      models.HardwareProfile{CPU: models.CPUIntel, GPU: models.GPUAmd},
		Optimizations: []string{"hibernation", "mouse_accel"},
		Packages:      []string{"discord"},
	}

	script, err := svc.CompileAt(selection, testCatalog(), models.DNSCloudflare, "build_abc", testTime)
	require.NoError(t, err)

	assert.Contains(t, script.Text, `"build_id":"build_abc"`)
	assert.Contains(t, script.Text, `"risk_profile":"caution"`)
	assert.Contains(t, script.Text, `"restore_point_required":true`)
	// Catalog order: mouse_accel is declared before hibernation.
	assert.Contains(t, script.Text, `"optimizations":["mouse_accel","hibernation"]`)
}
