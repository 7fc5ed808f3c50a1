package catalog

// Tier is the risk classification of an optimization. It controls
// default-on eligibility and whether the generated script creates a
// restore point before applying anything.
type Tier string

const (
	TierSafe      Tier = "safe"
	TierCaution   Tier = "caution"
	TierRisky     Tier = "risky"
	TierLudicrous Tier = "ludicrous"
)

// Rank returns the tier's priority for risk comparison. Higher means
// more dangerous.
func (t Tier) Rank() int {
	switch t {
	case TierCaution:
		return 1
	case TierRisky:
		return 2
	case TierLudicrous:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether the tier is one of the four known tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierSafe, TierCaution, TierRisky, TierLudicrous:
		return true
	}
	return false
}

// Tiers lists all tiers in ascending risk order.
func Tiers() []Tier {
	return []Tier{TierSafe, TierCaution, TierRisky, TierLudicrous}
}

// Category groups optimizations by the script section they belong to.
type Category string

const (
	CategorySystem      Category = "system"
	CategoryPerformance Category = "performance"
	CategoryPower       Category = "power"
	CategoryNetwork     Category = "network"
	CategoryPrivacy     Category = "privacy"
	CategoryAudio       Category = "audio"
)

// Categories lists all categories in the fixed order the generated
// script emits its sections. Section order is part of the output
// contract, callers diff script text across compiles.
func Categories() []Category {
	return []Category{
		CategorySystem,
		CategoryPerformance,
		CategoryPower,
		CategoryNetwork,
		CategoryPrivacy,
		CategoryAudio,
	}
}

// ClassifyRisk returns the highest tier among the selected keys, or
// TierSafe for an empty or unrecognized selection.
func ClassifyRisk(selection []string) Tier {
	highest := TierSafe
	for _, key := range selection {
		def, ok := Get(key)
		if !ok {
			continue
		}
		if def.Tier.Rank() > highest.Rank() {
			highest = def.Tier
		}
	}
	return highest
}

// RequiresRestorePoint reports whether the selection is risky enough
// that the generated script must create a restore point first. Anything
// at caution or above qualifies.
func RequiresRestorePoint(selection []string) bool {
	return ClassifyRisk(selection).Rank() >= TierCaution.Rank()
}
