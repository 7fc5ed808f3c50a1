package badger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/models"
)

// ProgressStorage implements the ProgressStorage interface for Badger
type ProgressStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewProgressStorage creates a new ProgressStorage instance
func NewProgressStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ProgressStorage {
	return &ProgressStorage{
		db:     db,
		logger: logger,
	}
}

// SaveProgress inserts or updates the apply-progress record for a build.
// UpdatedAt is stamped on every save.
func (s *ProgressStorage) SaveProgress(progress *models.BuildProgress) error {
	buildID := strings.TrimSpace(progress.BuildID)
	if buildID == "" {
		return fmt.Errorf("build ID is required")
	}

	record := models.BuildProgress{
		BuildID:        buildID,
		CompletedSteps: progress.CompletedSteps,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := s.db.Store().Upsert(buildID, &record); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Debug().
		Str("build_id", buildID).
		Int("completed", len(record.CompletedSteps)).
		Msg("Build progress saved")

	return nil
}

// GetProgress retrieves the apply-progress record for a build
func (s *ProgressStorage) GetProgress(buildID string) (*models.BuildProgress, error) {
	var progress models.BuildProgress
	err := s.db.Store().Get(strings.TrimSpace(buildID), &progress)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return &progress, nil
}

// DeleteProgress removes the apply-progress record for a build
func (s *ProgressStorage) DeleteProgress(buildID string) error {
	err := s.db.Store().Delete(strings.TrimSpace(buildID), &models.BuildProgress{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}

	return nil
}

// CountBuilds returns the number of builds with saved progress
func (s *ProgressStorage) CountBuilds() (int, error) {
	count, err := s.db.Store().Count(&models.BuildProgress{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count builds: %w", err)
	}
	return int(count), nil
}

// ClearAll removes all apply-progress records
func (s *ProgressStorage) ClearAll() error {
	if err := s.db.Store().DeleteMatching(&models.BuildProgress{}, nil); err != nil {
		return fmt.Errorf("failed to clear progress records: %w", err)
	}

	s.logger.Debug().Msg("All build progress records cleared")
	return nil
}
