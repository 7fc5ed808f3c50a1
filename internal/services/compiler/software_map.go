package compiler

import "github.com/tweakforge/tweakforge/internal/models"

// Companion-software lookup tables. An empty value means the brand has
// no installable companion package; those entries are skipped without
// comment. Brand-implied packages are best-effort add-ons: they are
// only added when the live catalog actually carries the key, and a
// catalog miss here is silent (unlike explicit package selections,
// which surface as missing).

var peripheralSoftware = map[models.PeripheralBrand]string{
	models.PeripheralLogitech:    "logitech-ghub",
	models.PeripheralRazer:       "razer-synapse",
	models.PeripheralCorsair:     "corsair-icue",
	models.PeripheralSteelSeries: "steelseries-gg",
	models.PeripheralHyperX:      "hyperx-ngenuity",
	models.PeripheralAsus:        "", // Armoury Crate is not installable unattended
}

var monitorSoftware = map[models.MonitorBrand]string{
	models.MonitorLG:       "lg-onscreen-control",
	models.MonitorSamsung:  "samsung-easy-setting-box",
	models.MonitorDell:     "dell-display-manager",
	models.MonitorBenQ:     "benq-display-pilot",
	models.MonitorGigabyte: "", // OSD Sidekick has no unattended installer
	models.MonitorAOC:      "aoc-gmenu",
}
