package sharecode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/models"
	"github.com/tweakforge/tweakforge/internal/stableid"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	registry, err := stableid.Default()
	require.NoError(t, err)
	return NewCodec(registry, arbor.NewLogger())
}

// rawToken builds a token from an arbitrary payload map, bypassing
// Encode, so tests can craft envelopes Encode would never produce.
func rawToken(t *testing.T, version int, payload interface{}) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var buf bytes.Buffer
	writer, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = writer.Write(raw)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return strconv.Itoa(version) + "." + base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	build := models.BuildToEncode{
		CPU:             models.CPUAmdX3D,
		GPU:             models.GPUNvidia,
		DNS:             models.DNSQuad9,
		Peripherals:     []models.PeripheralBrand{models.PeripheralLogitech, models.PeripheralCorsair},
		MonitorSoftware: []models.MonitorBrand{models.MonitorLG},
		Optimizations:   []string{"mouse_accel", "game_bar", "timer_resolution"},
		Packages:        []string{"discord", "obs-studio"},
		Preset:          "esports",
	}

	token, err := codec.Encode(build)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "1."))

	decoded, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, build.CPU, decoded.CPU)
	assert.Equal(t, build.GPU, decoded.GPU)
	assert.Equal(t, build.DNS, decoded.DNS)
	assert.Equal(t, build.Peripherals, decoded.Peripherals)
	assert.Equal(t, build.MonitorSoftware, decoded.MonitorSoftware)
	assert.ElementsMatch(t, build.Optimizations, decoded.Optimizations)
	assert.Equal(t, build.Packages, decoded.Packages)
	assert.Equal(t, build.Preset, decoded.Preset)
	assert.Zero(t, decoded.SkippedCount)
	assert.Empty(t, decoded.Warnings)
}

func TestCPUOnlyRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(models.BuildToEncode{CPU: models.CPUAmdX3D})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, models.CPUAmdX3D, decoded.CPU)
	assert.Empty(t, decoded.Warnings)
	assert.Zero(t, decoded.SkippedCount)
}

func TestEncodeDropsUnmappableOptimizationKeys(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(models.BuildToEncode{
		Optimizations: []string{"mouse_accel", "key_from_the_future"},
	})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"mouse_accel"}, decoded.Optimizations)
	assert.Zero(t, decoded.SkippedCount)
}

func TestDecodeFragmentMarkerStripped(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(models.BuildToEncode{CPU: models.CPUIntel})
	require.NoError(t, err)

	decoded, err := codec.Decode("#" + token)
	require.NoError(t, err)
	assert.Equal(t, models.CPUIntel, decoded.CPU)
}

func TestDecodeUnknownOptimizationIDs(t *testing.T) {
	codec := newTestCodec(t)

	// Id 2 is mouse_accel; 900-902 were never assigned.
	token := rawToken(t, 1, map[string]interface{}{
		"v": 1,
		"o": []int{2, 900, 901, 902},
	})

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"mouse_accel"}, decoded.Optimizations)
	assert.Equal(t, 3, decoded.SkippedCount)
	require.Len(t, decoded.Warnings, 1)
	assert.Equal(t, "3 optimization(s) no longer available", decoded.Warnings[0])
}

func TestDecodeRetiredIDsAreSkipped(t *testing.T) {
	codec := newTestCodec(t)

	// 14 is the retired drivers_cleanup id; monitor 6 is retired viotek.
	token := rawToken(t, 1, map[string]interface{}{
		"v": 1,
		"o": []int{14},
		"m": []int{6},
	})

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded.Optimizations)
	assert.Empty(t, decoded.MonitorSoftware)
	assert.Equal(t, 2, decoded.SkippedCount)
	assert.Len(t, decoded.Warnings, 2)
}

func TestDecodeUnknownScalarIDs(t *testing.T) {
	codec := newTestCodec(t)

	token := rawToken(t, 1, map[string]interface{}{
		"v": 1,
		"c": 99,
		"g": 1,
	})

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded.CPU)
	assert.Equal(t, models.GPUNvidia, decoded.GPU)
	assert.Equal(t, 1, decoded.SkippedCount)
	require.Len(t, decoded.Warnings, 1)
	assert.Contains(t, decoded.Warnings[0], "CPU")
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	codec := newTestCodec(t)

	// Prefix version 2.
	token := rawToken(t, 2, map[string]interface{}{"v": 2})
	_, err := codec.Decode(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "version 2")

	// Matching prefix but future embedded version.
	token = rawToken(t, 1, map[string]interface{}{"v": 2})
	_, err = codec.Decode(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", "1abcdef"},
		{"non-numeric version", "abc.def"},
		{"version zero", "0.abcdef"},
		{"negative version", "-1.abcdef"},
		{"bad base64", "1.!!!not-base64!!!"},
		{"not deflate data", "1." + base64.RawURLEncoding.EncodeToString([]byte("plain text"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			require.Error(t, err)
			if tt.name != "empty" {
				assert.NotErrorIs(t, err, ErrUnsupportedVersion)
			}
		})
	}
}

func TestDecodePackagesPassThrough(t *testing.T) {
	codec := newTestCodec(t)

	token := rawToken(t, 1, map[string]interface{}{
		"v": 1,
		"s": []string{"discord", "a-package-this-release-never-heard-of"},
	})

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"discord", "a-package-this-release-never-heard-of"}, decoded.Packages)
	assert.Zero(t, decoded.SkippedCount)
}

func TestTokenIsURLFragmentSafe(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(models.BuildToEncode{
		Optimizations: []string{"mouse_accel", "game_bar", "game_dvr", "telemetry"},
		Packages:      []string{"discord", "steam", "obs-studio"},
	})
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "#")
}
