package interfaces

import (
	"errors"

	"github.com/tweakforge/tweakforge/internal/models"
)

// ErrNotFound is returned by storage lookups when no record exists for
// the given key.
var ErrNotFound = errors.New("not found")

// ProgressStorage - interface for persisted build apply-progress
type ProgressStorage interface {
	SaveProgress(progress *models.BuildProgress) error
	GetProgress(buildID string) (*models.BuildProgress, error)
	DeleteProgress(buildID string) error
	CountBuilds() (int, error)

	// Bulk operations
	ClearAll() error
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	ProgressStorage() ProgressStorage
	DB() interface{}
	Close() error
}
