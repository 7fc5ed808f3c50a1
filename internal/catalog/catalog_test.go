package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name      string
		selection []string
		want      Tier
	}{
		{"empty selection is safe", nil, TierSafe},
		{"only safe keys", []string{"mouse_accel", "game_bar"}, TierSafe},
		{"caution dominates safe", []string{"mouse_accel", "hibernation"}, TierCaution},
		{"risky dominates caution", []string{"hibernation", "timer_resolution"}, TierRisky},
		{"ludicrous dominates everything", []string{"mouse_accel", "hibernation", "timer_resolution", "mitigations_off"}, TierLudicrous},
		{"single ludicrous key", []string{"defender_realtime_off"}, TierLudicrous},
		{"unknown keys are ignored", []string{"not_a_real_key"}, TierSafe},
		{"unknown keys do not mask real ones", []string{"not_a_real_key", "windows_search"}, TierRisky},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.selection))
		})
	}
}

func TestRequiresRestorePoint(t *testing.T) {
	assert.False(t, RequiresRestorePoint(nil))
	assert.False(t, RequiresRestorePoint([]string{"mouse_accel"}))
	assert.True(t, RequiresRestorePoint([]string{"hibernation"}))
	assert.True(t, RequiresRestorePoint([]string{"timer_resolution"}))
	assert.True(t, RequiresRestorePoint([]string{"windows_update_disable"}))
}

func TestLudicrousNeverDefaultChecked(t *testing.T) {
	for _, def := range Definitions() {
		if def.Tier == TierLudicrous {
			assert.False(t, def.DefaultChecked, "ludicrous key %q must not be default-checked", def.Key)
		}
	}
}

func TestPresetsContainNoLudicrousKeys(t *testing.T) {
	for _, name := range PresetNames() {
		keys, ok := PresetKeys(name)
		require.True(t, ok)
		for _, key := range keys {
			def, found := Get(key)
			require.True(t, found, "preset %q references unknown key %q", name, key)
			assert.NotEqual(t, TierLudicrous, def.Tier, "preset %q contains ludicrous key %q", name, key)
		}
	}
}

func TestDefaultKeysAreAllDefaultChecked(t *testing.T) {
	defaults := DefaultKeys()
	require.NotEmpty(t, defaults)
	for _, key := range defaults {
		def, ok := Get(key)
		require.True(t, ok)
		assert.True(t, def.DefaultChecked)
	}
	// Declaration order is preserved.
	assert.Equal(t, "restore_point", defaults[0])
}

func TestLookup(t *testing.T) {
	defs := Lookup(TierSafe, CategorySystem)
	require.NotEmpty(t, defs)
	for _, def := range defs {
		assert.Equal(t, TierSafe, def.Tier)
		assert.Equal(t, CategorySystem, def.Category)
	}

	assert.Empty(t, Lookup(TierLudicrous, CategoryAudio))
}

func TestCategoriesForTier(t *testing.T) {
	cats := CategoriesForTier(TierLudicrous)
	assert.Equal(t, []Category{CategorySystem, CategoryPerformance, CategoryPrivacy}, cats)
}

func TestKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Definitions() {
		assert.False(t, seen[def.Key], "duplicate optimization key %q", def.Key)
		seen[def.Key] = true
		assert.True(t, def.Tier.IsValid(), "key %q has invalid tier %q", def.Key, def.Tier)
	}
}
