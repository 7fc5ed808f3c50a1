package interfaces

import (
	"context"
	"time"

	"github.com/tweakforge/tweakforge/internal/models"
)

// SoftwareService - interface for the winget package catalog
type SoftwareService interface {
	// Catalog returns the current package catalog keyed by package key.
	Catalog() models.SoftwareCatalog

	// Refresh fetches the remote catalog and swaps it in if valid.
	Refresh(ctx context.Context) error

	// LastRefreshed returns the time of the last successful refresh,
	// zero if the embedded catalog is still in use.
	LastRefreshed() time.Time

	// StartScheduler begins periodic refresh on the configured schedule.
	StartScheduler() error

	// Stop halts the refresh scheduler.
	Stop()
}
