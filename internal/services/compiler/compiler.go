package compiler

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/catalog"
	"github.com/tweakforge/tweakforge/internal/common"
	"github.com/tweakforge/tweakforge/internal/models"
)

// Service compiles a selection into PowerShell script text. It holds
// no state between calls; compilation is pure over its inputs, so the
// UI can recompile on every change and diff the output.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a compiler service.
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// buildConfig is the machine-readable block embedded near the top of
// every script for downstream auditing and diffing.
type buildConfig struct {
	BuildID              string                 `json:"build_id"`
	GeneratedAt          string                 `json:"generated_at"`
	Hardware             models.HardwareProfile `json:"hardware"`
	DNS                  string                 `json:"dns,omitempty"`
	Optimizations        []string               `json:"optimizations"`
	Packages             []string               `json:"packages"`
	MissingPackages      []string               `json:"missing_packages,omitempty"`
	RiskProfile          string                 `json:"risk_profile"`
	RestorePointRequired bool                   `json:"restore_point_required"`
}

// installEntry is one resolved package for the install section.
type installEntry struct {
	Key         string
	InstallerID string
	Name        string
}

// Compile generates a script with a fresh build id and the current
// time. See CompileAt for the deterministic core.
func (s *Service) Compile(selection models.SelectionState, softwareCatalog models.SoftwareCatalog, dns models.DNSProvider) (*models.GeneratedScript, error) {
	return s.CompileAt(selection, softwareCatalog, dns, common.NewBuildID(), time.Now().UTC())
}

// CompileAt generates the script for a selection. Output is
// deterministic for identical arguments: optimization steps follow
// catalog declaration order regardless of selection order, and the
// install section is sorted by display name.
func (s *Service) CompileAt(selection models.SelectionState, softwareCatalog models.SoftwareCatalog, dns models.DNSProvider, buildID string, generatedAt time.Time) (*models.GeneratedScript, error) {
	selected := make(map[string]bool, len(selection.Optimizations))
	for _, key := range selection.Optimizations {
		selected[key] = true
	}

	dnsEntry := resolveDNS(dns)
	installs, missing := s.resolvePackages(selection, softwareCatalog)

	riskProfile := catalog.ClassifyRisk(selection.Optimizations)
	restoreRequired := catalog.RequiresRestorePoint(selection.Optimizations)

	// Optimization keys mirrored into the config block, in catalog
	// order. Keys the catalog does not know are dropped everywhere.
	var resolvedKeys []string
	for _, def := range catalog.Definitions() {
		if selected[def.Key] {
			resolvedKeys = append(resolvedKeys, def.Key)
		}
	}

	packageKeys := make([]string, 0, len(installs))
	for _, entry := range installs {
		packageKeys = append(packageKeys, entry.Key)
	}
	sort.Strings(packageKeys)

	var sb strings.Builder

	// The danger banner precedes all other content when any ludicrous
	// key is selected.
	if riskProfile == catalog.TierLudicrous {
		sb.WriteString(dangerBanner)
		sb.WriteString("\n")
	}

	s.emitHeader(&sb, selection.Hardware, buildID, generatedAt)

	config := buildConfig{
		BuildID:              buildID,
		GeneratedAt:          generatedAt.Format(time.RFC3339),
		Hardware:             selection.Hardware,
		Optimizations:        resolvedKeys,
		Packages:             packageKeys,
		MissingPackages:      missing,
		RiskProfile:          string(riskProfile),
		RestorePointRequired: restoreRequired,
	}
	if selected["dns_servers"] {
		config.DNS = strings.ToLower(dnsEntry.Label)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal build config: %w", err)
	}
	fmt.Fprintf(&sb, "# build-config: %s\n\n", configJSON)

	sb.WriteString(adminCheck)
	sb.WriteString("\n")
	sb.WriteString(helperBlock)
	sb.WriteString("\n")

	if restoreRequired || selected["restore_point"] {
		sb.WriteString(restorePointStep)
		sb.WriteString("\n")
	}

	for _, category := range catalog.Categories() {
		s.emitSection(&sb, category, selected, selection.Hardware, dnsEntry)
	}

	s.emitInstallSection(&sb, installs, missing)

	sb.WriteString(footer)

	s.logger.Debug().
		Str("build_id", buildID).
		Str("risk_profile", string(riskProfile)).
		Int("optimizations", len(resolvedKeys)).
		Int("packages", len(packageKeys)).
		Int("missing_packages", len(missing)).
		Msg("Selection compiled")

	return &models.GeneratedScript{
		Text:                 sb.String(),
		BuildID:              buildID,
		RiskProfile:          string(riskProfile),
		RestorePointRequired: restoreRequired,
		Packages:             packageKeys,
		MissingPackages:      missing,
	}, nil
}

// resolvePackages unions the explicit package selection with packages
// implied by peripheral and monitor brands, keeping only keys the
// catalog knows. Explicit misses are reported; brand-implied misses
// are best-effort and silent.
func (s *Service) resolvePackages(selection models.SelectionState, softwareCatalog models.SoftwareCatalog) ([]installEntry, []string) {
	resolved := make(map[string]models.SoftwarePackage)
	var missing []string

	for _, key := range selection.Packages {
		pkg, ok := softwareCatalog[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		resolved[key] = pkg
	}

	for _, brand := range selection.Hardware.Peripherals {
		key := peripheralSoftware[brand]
		if key == "" {
			continue
		}
		if pkg, ok := softwareCatalog[key]; ok {
			resolved[key] = pkg
		}
	}
	for _, brand := range selection.Hardware.MonitorSoftware {
		key := monitorSoftware[brand]
		if key == "" {
			continue
		}
		if pkg, ok := softwareCatalog[key]; ok {
			resolved[key] = pkg
		}
	}

	installs := make([]installEntry, 0, len(resolved))
	for key, pkg := range resolved {
		installs = append(installs, installEntry{
			Key:         key,
			InstallerID: pkg.InstallerID,
			Name:        pkg.Name,
		})
	}
	sort.Slice(installs, func(i, j int) bool {
		if installs[i].Name != installs[j].Name {
			return installs[i].Name < installs[j].Name
		}
		return installs[i].Key < installs[j].Key
	})

	missing = dedupeSorted(missing)
	return installs, missing
}

func (s *Service) emitHeader(sb *strings.Builder, hardware models.HardwareProfile, buildID string, generatedAt time.Time) {
	sb.WriteString("# ==================================================================\n")
	sb.WriteString("#  TweakForge optimization script\n")
	fmt.Fprintf(sb, "#  Generated : %s\n", generatedAt.Format(time.RFC3339))
	fmt.Fprintf(sb, "#  Build     : %s\n", buildID)
	fmt.Fprintf(sb, "#  Hardware  : %s\n", hardwareSummary(hardware))
	sb.WriteString("#  Save as tweakforge.ps1 and run from an elevated PowerShell prompt.\n")
	sb.WriteString("# ==================================================================\n\n")
}

func (s *Service) emitSection(sb *strings.Builder, category catalog.Category, selected map[string]bool, hardware models.HardwareProfile, dns dnsEntry) {
	fmt.Fprintf(sb, "# ====== %s ======\n", category)

	emitted := 0
	for _, def := range catalog.Definitions() {
		if def.Category != category || !selected[def.Key] {
			continue
		}
		for _, action := range actionsFor(def.Key, hardware, dns) {
			emitAction(sb, action, dns)
			emitted++
		}
	}

	if emitted == 0 {
		fmt.Fprintf(sb, "# (no %s tweaks selected)\n", category)
	}
	sb.WriteString("\n")
}

func (s *Service) emitInstallSection(sb *strings.Builder, installs []installEntry, missing []string) {
	sb.WriteString("# ====== software install ======\n")

	if len(installs) == 0 {
		sb.WriteString("# (no software selected)\n")
	} else {
		sb.WriteString("$packages = @(\n")
		for _, entry := range installs {
			fmt.Fprintf(sb, "    @{ Id = '%s'; Name = '%s' }\n", psEscape(entry.InstallerID), psEscape(entry.Name))
		}
		sb.WriteString(")\n")
		sb.WriteString(`foreach ($pkg in $packages) {
    Write-Host "- Install $($pkg.Name)"
    winget install --id $pkg.Id --exact --silent --accept-source-agreements --accept-package-agreements | Out-Null
    switch ($LASTEXITCODE) {
        0           { Write-OkResult "$($pkg.Name) installed" }
        -1978335189 { Write-SkipResult "$($pkg.Name) already installed" }
        default     { Write-FailResult "$($pkg.Name) install failed (exit $LASTEXITCODE)" }
    }
}
`)
	}

	if len(missing) > 0 {
		sb.WriteString("# The following selected packages were not found in the software catalog:\n")
		for _, key := range missing {
			fmt.Fprintf(sb, "#   - %s\n", key)
		}
	}
	sb.WriteString("\n")
}

// hardwareSummary renders the one-line hardware description for the
// script header.
func hardwareSummary(hardware models.HardwareProfile) string {
	parts := []string{}
	if hardware.CPU != "" {
		parts = append(parts, "cpu="+string(hardware.CPU))
	}
	if hardware.GPU != "" {
		parts = append(parts, "gpu="+string(hardware.GPU))
	}
	if len(hardware.Peripherals) > 0 {
		brands := make([]string, 0, len(hardware.Peripherals))
		for _, brand := range hardware.Peripherals {
			brands = append(brands, string(brand))
		}
		sort.Strings(brands)
		parts = append(parts, "peripherals="+strings.Join(brands, ","))
	}
	if len(hardware.MonitorSoftware) > 0 {
		brands := make([]string, 0, len(hardware.MonitorSoftware))
		for _, brand := range hardware.MonitorSoftware {
			brands = append(brands, string(brand))
		}
		sort.Strings(brands)
		parts = append(parts, "monitors="+strings.Join(brands, ","))
	}
	if len(parts) == 0 {
		return "unspecified"
	}
	return strings.Join(parts, " ")
}

// dedupeSorted sorts and de-duplicates a string slice in place.
func dedupeSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	sort.Strings(values)
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
