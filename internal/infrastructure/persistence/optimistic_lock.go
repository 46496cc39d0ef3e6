package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// ErrConcurrentModification is returned when an optimistic lock check fails
func errConcurrentModification() error {
	return shared.NewDomainError("CONCURRENT_MODIFICATION", "The record has been modified by another user")
}

// updateWithVersionCheck writes a full model row guarded by a version match.
// The model must already carry the incremented version; expectedVersion is
// the version read when the aggregate was loaded.
func updateWithVersionCheck(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, expectedVersion int) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", id, expectedVersion).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errConcurrentModification()
	}
	return nil
}
