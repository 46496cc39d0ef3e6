package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

const (
	sequenceKindMatter  = "matter"
	sequenceKindInvoice = "invoice"
)

// nextSequenceNumber allocates the next number for a kind within the current
// year and formats it as PREFIX-YYYY-NNNNN. The UPDATE-first approach takes a
// row lock on Postgres, so concurrent allocations serialize instead of
// handing out duplicates.
func nextSequenceNumber(ctx context.Context, db *gorm.DB, kind, prefix string) (string, error) {
	year := time.Now().UTC().Year()
	var value int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.NumberSequenceModel{}).
			Where("kind = ? AND year = ?", kind, year).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// first allocation for this kind and year
			seq := models.NumberSequenceModel{Kind: kind, Year: year, LastValue: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var seq models.NumberSequenceModel
		if err := tx.Where("kind = ? AND year = ?", kind, year).First(&seq).Error; err != nil {
			return err
		}
		value = seq.LastValue
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", kind, err)
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, year, value), nil
}
