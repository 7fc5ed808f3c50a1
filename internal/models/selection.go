package models

import "time"

// SelectionState is the full input to script compilation: the hardware
// profile plus the optimization keys and software package keys the user
// has toggled on. Key order is irrelevant; the compiler re-orders
// everything into catalog declaration order.
type SelectionState struct {
	Hardware      HardwareProfile `json:"hardware"`
	Optimizations []string        `json:"optimizations,omitempty"`
	Packages      []string        `json:"packages,omitempty"`
}

// SoftwarePackage is one installable entry from the software catalog.
// InstallerID is the winget package identifier.
type SoftwarePackage struct {
	InstallerID string `json:"installer_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// SoftwareCatalog maps package keys to their catalog entries. The
// catalog is supplied externally and treated as immutable for the
// duration of a single compile or encode call.
type SoftwareCatalog map[string]SoftwarePackage

// BuildToEncode is the shareable shape of a selection: everything a
// token needs to restore a build on another machine, plus an optional
// named preset.
type BuildToEncode struct {
	CPU             CPUVendor         `json:"cpu,omitempty"`
	GPU             GPUVendor         `json:"gpu,omitempty"`
	DNS             DNSProvider       `json:"dns,omitempty"`
	Peripherals     []PeripheralBrand `json:"peripherals,omitempty"`
	MonitorSoftware []MonitorBrand    `json:"monitor_software,omitempty"`
	Optimizations   []string          `json:"optimizations,omitempty"`
	Packages        []string          `json:"packages,omitempty"`
	Preset          string            `json:"preset,omitempty"`
}

/// DecodedBuild is the result of decoding a share token: the restored
// selection plus diagnostics for anything the token carried that this
// release no longer recognizes. Per-field problems never fail a decode;
// they are counted and summarized in Warnings.
type DecodedBuild struct {
	CPU             CPUVendor         `json:"cpu,omitempty"`
	GPU             GPUVendor         `json:"gpu,omitempty"`
	DNS             DNSProvider       `json:"dns,omitempty"`
	Peripherals     []PeripheralBrand `json:"peripherals,omitempty"`
	MonitorSoftware []MonitorBrand    `json:"monitor_software,omitempty"`
	Optimizations   []string          `json:"optimizations,omitempty"`
	Packages        []string          `json:"packages,omitempty"`
	Preset          string            `json:"preset,omitempty"`
	SkippedCount    int               `json:"skipped_count"`
	Warnings        []string          `json:"warnings,omitempty"`
}

// GeneratedScript is the compiled output: the script text itself plus
// the metadata the compiler derived while assembling it.
type GeneratedScript struct {
	Text                 string   `json:"text"`
	BuildID              string   `json:"build_id"`
	RiskProfile          string   `json:"risk_profile"`
	RestorePointRequired bool     `json:"restore_point_required"`
	Packages             []string `json:"packages,omitempty"`
	MissingPackages      []string `json:"missing_packages,omitempty"`
}

// BuildProgress records which script steps a user has ticked off for a
// given build. Persisted locally so a revisit restores the checklist.
type BuildProgress struct {
	BuildID        string    `json:"build_id" badgerhold:"key"`
	CompletedSteps []string  `json:"completed_steps"`
	UpdatedAt      time.Time `json:"updated_at"`
}
