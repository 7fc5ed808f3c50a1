package models

// CPUVendor identifies the CPU family of a hardware profile. The x3d
// variant is tracked separately from plain AMD because several cache
// and core-parking tweaks only apply to X3D parts.
type CPUVendor string

const (
	CPUAmdX3D CPUVendor = "amd_x3d"
	CPUAmd    CPUVendor = "amd"
	CPUIntel  CPUVendor = "intel"
)

// IsValid reports whether the vendor is one of the known CPU values.
func (c CPUVendor) IsValid() bool {
	switch c {
	case CPUAmdX3D, CPUAmd, CPUIntel:
		return true
	}
	return false
}

// GPUVendor identifies the GPU family of a hardware profile.
type GPUVendor string

const (
	GPUNvidia GPUVendor = "nvidia"
	GPUAmd    GPUVendor = "amd"
	GPUIntel  GPUVendor = "intel"
)

// IsValid reports whether the vendor is one of the known GPU values.
func (g GPUVendor) IsValid() bool {
	switch g {
	case GPUNvidia, GPUAmd, GPUIntel:
		return true
	}
	return false
}

// PeripheralBrand identifies a peripheral manufacturer whose companion
// software can be added to the install list.
type PeripheralBrand string

const (
	PeripheralLogitech    PeripheralBrand = "logitech"
	PeripheralRazer       PeripheralBrand = "razer"
	PeripheralCorsair     PeripheralBrand = "corsair"
	PeripheralSteelSeries PeripheralBrand = "steelseries"
	PeripheralHyperX      PeripheralBrand = "hyperx"
	PeripheralAsus        PeripheralBrand = "asus"
)

// IsValid reports whether the brand is a known peripheral manufacturer.
func (p PeripheralBrand) IsValid() bool {
	switch p {
	case PeripheralLogitech, PeripheralRazer, PeripheralCorsair,
		PeripheralSteelSeries, PeripheralHyperX, PeripheralAsus:
		return true
	}
	return false
}

// MonitorBrand identifies a monitor manufacturer whose on-screen control
// software can be added to the install list.
type MonitorBrand string

const (
	MonitorLG       MonitorBrand = "lg"
	MonitorSamsung  MonitorBrand = "samsung"
	MonitorDell     MonitorBrand = "dell"
	MonitorBenQ     MonitorBrand = "benq"
	MonitorGigabyte MonitorBrand = "gigabyte"
	MonitorAOC      MonitorBrand = "aoc"
)

// IsValid reports whether the brand is a known monitor manufacturer.
func (m MonitorBrand) IsValid() bool {
	switch m {
	case MonitorLG, MonitorSamsung, MonitorDell, MonitorBenQ,
		MonitorGigabyte, MonitorAOC:
		return true
	}
	return false
}

// DNSProvider selects which public resolver the generated script
// configures. Unknown providers fall back to Cloudflare.
type DNSProvider string

const (
	DNSCloudflare DNSProvider = "cloudflare"
	DNSGoogle     DNSProvider = "google"
	DNSQuad9      DNSProvider = "quad9"
	DNSAdGuard    DNSProvider = "adguard"
)

// IsValid reports whether the provider is a known DNS provider.
func (d DNSProvider) IsValid() bool {
	switch d {
	case DNSCloudflare, DNSGoogle, DNSQuad9, DNSAdGuard:
		return true
	}
	return false
}

// HardwareProfile describes the machine a build targets.
type HardwareProfile struct {
	CPU             CPUVendor         `json:"cpu,omitempty"`
	GPU             GPUVendor         `json:"gpu,omitempty"`
	Peripherals     []PeripheralBrand `json:"peripherals,omitempty"`
	MonitorSoftware []MonitorBrand    `json:"monitor_software,omitempty"`
}
