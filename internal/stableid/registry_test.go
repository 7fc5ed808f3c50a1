package stableid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tweakforge/tweakforge/internal/catalog"
)

func TestDefaultRegistryAudits(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.NoError(t, reg.Audit())
}

func TestCPUAssignments(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	// These three assignments are wire format, fixed forever.
	tests := []struct {
		id   int
		want string
	}{
		{1, "amd_x3d"},
		{2, "amd"},
		{3, "intel"},
	}
	for _, tt := range tests {
		value, ok := reg.Lookup(DomainCPU, tt.id)
		require.True(t, ok)
		assert.Equal(t, tt.want, value)

		id, ok := reg.IDFor(DomainCPU, tt.want)
		require.True(t, ok)
		assert.Equal(t, tt.id, id)
	}
}

func TestRetiredIDsDoNotResolve(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, ok := reg.Lookup(DomainOptimization, 14) // drivers_cleanup
	assert.False(t, ok)
	assert.True(t, reg.Retired(DomainOptimization, 14))

	_, ok = reg.Lookup(DomainMonitor, 6) // viotek
	assert.False(t, ok)
	assert.True(t, reg.Retired(DomainMonitor, 6))

	// Ledger carries the former value.
	ledger := reg.Ledger(DomainOptimization)
	require.NotEmpty(t, ledger)
	found := false
	for _, dep := range ledger {
		if dep.ID == 14 {
			found = true
			assert.Equal(t, "drivers_cleanup", dep.FormerValue)
			assert.Equal(t, "2025-02-02", dep.RetiredDate)
		}
	}
	assert.True(t, found)
}

func TestUnknownIDsDoNotResolve(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, ok := reg.Lookup(DomainCPU, 99)
	assert.False(t, ok)
	assert.False(t, reg.Retired(DomainCPU, 99))
}

func TestEveryCatalogKeyHasAnID(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, def := range catalog.Definitions() {
		_, ok := reg.IDFor(DomainOptimization, def.Key)
		assert.True(t, ok, "optimization %q has no stable id", def.Key)
	}
}

func TestEveryPresetHasAnID(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, name := range catalog.PresetNames() {
		_, ok := reg.IDFor(DomainPreset, name)
		assert.True(t, ok, "preset %q has no stable id", name)
	}
}

func TestAuditRejectsReusedRetiredID(t *testing.T) {
	_, err := New(map[Domain][]Entry{
		DomainCPU: {
			{ID: 1, Key: "old_value", RetiredAt: "2025-01-01"},
			{ID: 1, Key: "new_value"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigned twice")
}

func TestAuditRejectsDuplicateValues(t *testing.T) {
	_, err := New(map[Domain][]Entry{
		DomainGPU: {
			{ID: 1, Key: "nvidia"},
			{ID: 2, Key: "nvidia"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapped twice")
}

func TestAuditRejectsRetiredEntryWithoutFormerValue(t *testing.T) {
	_, err := New(map[Domain][]Entry{
		DomainDNS: {
			{ID: 1, Key: "", RetiredAt: "2025-01-01"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no former value")
}
