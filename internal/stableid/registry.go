package stableid

import (
	"fmt"
	"time"
)

// Domain names one kind of shareable value. Each domain has its own id
// space.
type Domain string

const (
	DomainCPU          Domain = "cpu"
	DomainGPU          Domain = "gpu"
	DomainDNS          Domain = "dns"
	DomainPeripheral   Domain = "peripheral"
	DomainMonitor      Domain = "monitor"
	DomainPreset       Domain = "preset"
	DomainOptimization Domain = "optimization"
)

// Domains lists every registered domain.
func Domains() []Domain {
	return []Domain{
		DomainCPU,
		DomainGPU,
		DomainDNS,
		DomainPeripheral,
		DomainMonitor,
		DomainPreset,
		DomainOptimization,
	}
}

// Entry is one source-of-truth registry row. When RetiredAt is set, Key
// holds the value the id used to mean; the id will never resolve again
// and must never be assigned a new meaning.
type Entry struct {
	ID        int
	Key       string
	RetiredAt string // YYYY-MM-DD, empty for live entries
}

// DeprecatedID is one immutable ledger row for a retired id.
type DeprecatedID struct {
	ID          int    `json:"id"`
	FormerValue string `json:"former_value"`
	RetiredDate string `json:"retired_date"`
}

// Registry holds the bidirectional id maps for every domain plus the
// deprecation ledger. It is built once at startup and read-only after.
type Registry struct {
	forward map[Domain]map[int]string
	reverse map[Domain]map[string]int
	ledger  map[Domain][]DeprecatedID
	entries map[Domain][]Entry
}

// New builds a registry from per-domain entry lists and audits it.
// Existing ids are permanent API surface: tokens encoded by any past
// release must keep decoding, so a failed audit is a programming error
// worth refusing to start over.
func New(entries map[Domain][]Entry) (*Registry, error) {
	r := &Registry{
		forward: make(map[Domain]map[int]string),
		reverse: make(map[Domain]map[string]int),
		ledger:  make(map[Domain][]DeprecatedID),
		entries: entries,
	}

	for domain, rows := range entries {
		r.forward[domain] = make(map[int]string, len(rows))
		r.reverse[domain] = make(map[string]int, len(rows))
		for _, row := range rows {
			if row.RetiredAt != "" {
				r.ledger[domain] = append(r.ledger[domain], DeprecatedID{
					ID:          row.ID,
					FormerValue: row.Key,
					RetiredDate: row.RetiredAt,
				})
				continue
			}
			r.forward[domain][row.ID] = row.Key
			r.reverse[domain][row.Key] = row.ID
		}
	}

	if err := r.Audit(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup resolves an id to its value. ok is false when the id is
// unknown or retired; decode treats both identically.
func (r *Registry) Lookup(domain Domain, id int) (string, bool) {
	value, ok := r.forward[domain][id]
	return value, ok
}

// IDFor resolves a value to its id.
func (r *Registry) IDFor(domain Domain, value string) (int, bool) {
	id, ok := r.reverse[domain][value]
	return id, ok
}

// Retired reports whether an id was explicitly retired (as opposed to
// never assigned).
func (r *Registry) Retired(domain Domain, id int) bool {
	for _, dep := range r.ledger[domain] {
		if dep.ID == id {
			return true
		}
	}
	return false
}

// Ledger returns the deprecation ledger for a domain.
func (r *Registry) Ledger(domain Domain) []DeprecatedID {
	return r.ledger[domain]
}

// Audit verifies the registry invariants:
//   - no id appears twice within a domain (live or retired)
//   - no retired id is reintroduced with a new meaning
//   - no two live entries share a value
//   - every retired entry carries a former value and a parseable date
func (r *Registry) Audit() error {
	for domain, rows := range r.entries {
		ids := make(map[int]bool, len(rows))
		values := make(map[string]bool, len(rows))
		retired := make(map[int]bool)

		for _, row := range rows {
			if ids[row.ID] {
				return fmt.Errorf("stableid: domain %s: id %d assigned twice", domain, row.ID)
			}
			ids[row.ID] = true

			if row.RetiredAt != "" {
				if row.Key == "" {
					return fmt.Errorf("stableid: domain %s: retired id %d has no former value", domain, row.ID)
				}
				if _, err := time.Parse("2006-01-02", row.RetiredAt); err != nil {
					return fmt.Errorf("stableid: domain %s: retired id %d has bad date %q", domain, row.ID, row.RetiredAt)
				}
				retired[row.ID] = true
				continue
			}

			if row.Key == "" {
				return fmt.Errorf("stableid: domain %s: id %d has empty value", domain, row.ID)
			}
			if values[row.Key] {
				return fmt.Errorf("stableid: domain %s: value %q mapped twice", domain, row.Key)
			}
			values[row.Key] = true
		}

		// Every ledger row must correspond to a retired source entry,
		// and no retired id may also resolve.
		for _, dep := range r.ledger[domain] {
			if !retired[dep.ID] {
				return fmt.Errorf("stableid: domain %s: ledger id %d has no retired source entry", domain, dep.ID)
			}
			if _, live := r.forward[domain][dep.ID]; live {
				return fmt.Errorf("stableid: domain %s: retired id %d resolves to a value", domain, dep.ID)
			}
		}
	}
	return nil
}
