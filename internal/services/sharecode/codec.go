package sharecode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/models"
	"github.com/tweakforge/tweakforge/internal/stableid"
)

const (
	// schemaVersion is the one wire version this release can decode.
	schemaVersion = 1

	// versionSeparator splits the literal version prefix from the
	// compressed payload.
	versionSeparator = "."

	// maxPayloadBytes caps the decompressed payload size. Real tokens
	// are a few hundred bytes; anything near this limit is garbage or
	// hostile.
	maxPayloadBytes = 64 * 1024
)

// Structural decode errors. These are hard failures with no partial
// result; per-field data problems never surface here.
var (
	ErrMalformedToken     = errors.New("share token is malformed")
	ErrUnsupportedVersion = errors.New("share link was created by a newer version, please update")
)

// Codec encodes a build selection into a URL-fragment-safe token and
// back, translating every fixed-enumeration value through the stable-id
// registry.
type Codec struct {
	registry *stableid.Registry
	logger   arbor.ILogger
}

// NewCodec creates a codec over the given registry.
func NewCodec(registry *stableid.Registry, logger arbor.ILogger) *Codec {
	return &Codec{
		registry: registry,
		logger:   logger,
	}
}

// Encode serializes a build into a token of the form
// <version>.<base64url(deflate(json))>. Fields absent from the input
// are omitted from the payload. Optimization keys with no registry id
// cannot be represented and are dropped from the payload.
func (c *Codec) Encode(build models.BuildToEncode) (string, error) {
	payload := shareDataV1{V: schemaVersion}

	if id, ok := c.registry.IDFor(stableid.DomainCPU, string(build.CPU)); ok {
		payload.CPU = &id
	}
	if id, ok := c.registry.IDFor(stableid.DomainGPU, string(build.GPU)); ok {
		payload.GPU = &id
	}
	if id, ok := c.registry.IDFor(stableid.DomainDNS, string(build.DNS)); ok {
		payload.DNS = &id
	}
	if id, ok := c.registry.IDFor(stableid.DomainPreset, build.Preset); ok {
		payload.Preset = &id
	}

	for _, brand := range build.Peripherals {
		if id, ok := c.registry.IDFor(stableid.DomainPeripheral, string(brand)); ok {
			payload.Peripherals = append(payload.Peripherals, id)
		}
	}
	for _, brand := range build.MonitorSoftware {
		if id, ok := c.registry.IDFor(stableid.DomainMonitor, string(brand)); ok {
			payload.MonitorSoftware = append(payload.MonitorSoftware, id)
		}
	}
	for _, key := range build.Optimizations {
		id, ok := c.registry.IDFor(stableid.DomainOptimization, key)
		if !ok {
			c.logger.Debug().Str("key", key).Msg("Optimization key has no stable id, dropped from share payload")
			continue
		}
		payload.Optimizations = append(payload.Optimizations, id)
	}

	payload.Packages = append(payload.Packages, build.Packages...)

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal share payload: %w", err)
	}

	var buf bytes.Buffer
	writer, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := writer.Write(raw); err != nil {
		return "", fmt.Errorf("failed to compress share payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compression: %w", err)
	}

	token := strconv.Itoa(schemaVersion) + versionSeparator +
		base64.RawURLEncoding.EncodeToString(buf.Bytes())
	return token, nil
}

// Decode parses a token back into a build. Structural problems (bad
// envelope, unknown version, undecompressable payload) return an error
// with no partial result. Data problems (unknown or retired ids) are
// recovered per field: the item is dropped, SkippedCount grows, and a
// grouped warning is appended.
func (c *Codec) Decode(token string) (*models.DecodedBuild, error) {
	// Tokens arrive straight from location.hash; tolerate the marker.
	token = strings.TrimPrefix(strings.TrimSpace(token), "#")

	version, body, err := splitToken(token)
	if err != nil {
		return nil, err
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w (version %d)", ErrUnsupportedVersion, version)
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid base64", ErrMalformedToken)
	}

	reader := flate.NewReader(bytes.NewReader(raw))
	defer reader.Close()
	decompressed, err := io.ReadAll(io.LimitReader(reader, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: payload failed to decompress", ErrMalformedToken)
	}

	var payload shareDataV1
	if err := json.Unmarshal(decompressed, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrMalformedToken)
	}

	// Dispatch strictly on the embedded schema version. A newer payload
	// must be refused, never best-effort parsed under the old schema.
	if payload.V != schemaVersion {
		return nil, fmt.Errorf("%w (version %d)", ErrUnsupportedVersion, payload.V)
	}

	return c.decodeV1(payload), nil
}

// splitToken validates the envelope and returns the numeric version
// and the opaque payload body.
func splitToken(token string) (int, string, error) {
	idx := strings.Index(token, versionSeparator)
	if idx <= 0 {
		return 0, "", fmt.Errorf("%w: missing version separator", ErrMalformedToken)
	}
	version, err := strconv.Atoi(token[:idx])
	if err != nil {
		return 0, "", fmt.Errorf("%w: version is not numeric", ErrMalformedToken)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("%w: version %d is invalid", ErrMalformedToken, version)
	}
	return version, token[idx+1:], nil
}

// decodeV1 reconstructs a build from a version-1 payload. Never fails;
// every unresolvable id is skipped and reported through the build's
// diagnostics.
func (c *Codec) decodeV1(payload shareDataV1) *models.DecodedBuild {
	build := &models.DecodedBuild{}

	if payload.CPU != nil {
		if value, ok := c.lookupScalar(stableid.DomainCPU, *payload.CPU, func(v string) bool {
			return models.CPUVendor(v).IsValid()
		}); ok {
			build.CPU = models.CPUVendor(value)
		} else {
			build.SkippedCount++
			build.Warnings = append(build.Warnings, "CPU selection no longer available")
		}
	}
	if payload.GPU != nil {
		if value, ok := c.lookupScalar(stableid.DomainGPU, *payload.GPU, func(v string) bool {
			return models.GPUVendor(v).IsValid()
		}); ok {
			build.GPU = models.GPUVendor(value)
		} else {
			build.SkippedCount++
			build.Warnings = append(build.Warnings, "GPU selection no longer available")
		}
	}
	if payload.DNS != nil {
		if value, ok := c.lookupScalar(stableid.DomainDNS, *payload.DNS, func(v string) bool {
			return models.DNSProvider(v).IsValid()
		}); ok {
			build.DNS = models.DNSProvider(value)
		} else {
			build.SkippedCount++
			build.Warnings = append(build.Warnings, "DNS selection no longer available")
		}
	}
	if payload.Preset != nil {
		if value, ok := c.registry.Lookup(stableid.DomainPreset, *payload.Preset); ok {
			build.Preset = value
		} else {
			build.SkippedCount++
			build.Warnings = append(build.Warnings, "Preset no longer available")
		}
	}

	skippedPeripherals := 0
	for _, id := range payload.Peripherals {
		if value, ok := c.lookupScalar(stableid.DomainPeripheral, id, func(v string) bool {
			return models.PeripheralBrand(v).IsValid()
		}); ok {
			build.Peripherals = append(build.Peripherals, models.PeripheralBrand(value))
		} else {
			skippedPeripherals++
		}
	}
	if skippedPeripherals > 0 {
		build.SkippedCount += skippedPeripherals
		build.Warnings = append(build.Warnings, fmt.Sprintf("%d peripheral selection(s) no longer available", skippedPeripherals))
	}

	skippedMonitors := 0
	for _, id := range payload.MonitorSoftware {
		if value, ok := c.lookupScalar(stableid.DomainMonitor, id, func(v string) bool {
			return models.MonitorBrand(v).IsValid()
		}); ok {
			build.MonitorSoftware = append(build.MonitorSoftware, models.MonitorBrand(value))
		} else {
			skippedMonitors++
		}
	}
	if skippedMonitors > 0 {
		build.SkippedCount += skippedMonitors
		build.Warnings = append(build.Warnings, fmt.Sprintf("%d monitor software selection(s) no longer available", skippedMonitors))
	}

	skippedOptimizations := 0
	for _, id := range payload.Optimizations {
		value, ok := c.registry.Lookup(stableid.DomainOptimization, id)
		if !ok {
			skippedOptimizations++
			continue
		}
		build.Optimizations = append(build.Optimizations, value)
	}
	if skippedOptimizations > 0 {
		build.SkippedCount += skippedOptimizations
		build.Warnings = append(build.Warnings, fmt.Sprintf("%d optimization(s) no longer available", skippedOptimizations))
	}

	// Package keys pass through untouched; the caller validates them
	// against a live catalog.
	build.Packages = append(build.Packages, payload.Packages...)

	return build
}

// lookupScalar resolves an id and applies the field's type guard. A
// resolved value that fails the guard is treated exactly like an
// unknown id.
func (c *Codec) lookupScalar(domain stableid.Domain, id int, guard func(string) bool) (string, bool) {
	value, ok := c.registry.Lookup(domain, id)
	if !ok || !guard(value) {
		return "", false
	}
	return value, true
}
