package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/domain/billing"
)

func newMockBillingItemRepository(t *testing.T) (*GormBillingItemRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormBillingItemRepository(gormDB), mock, mockDB
}

func TestGormBillingItemRepository_FindUnbilled(t *testing.T) {
	t.Run("queries billable uninvoiced items in the period", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingItemRepository(t)
		defer mockDB.Close()

		matterID := uuid.New()
		itemID := uuid.New()
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "version", "matter_id", "billable"}).
			AddRow(itemID, 1, matterID, true)

		mock.ExpectQuery(`SELECT \* FROM "billing_items" WHERE \(matter_id = \$1 AND billable = \$2 AND invoice_id IS NULL\) AND \(activity_date >= \$3 AND activity_date <= \$4\) ORDER BY activity_date ASC`).
			WithArgs(matterID, true, from, to).
			WillReturnRows(rows)

		items, err := repo.FindUnbilled(context.Background(), matterID, from, to)

		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, itemID, items[0].ID)
		assert.True(t, items[0].Billable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingItemRepository_SummaryForMatter(t *testing.T) {
	t.Run("aggregates totals in SQL", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingItemRepository(t)
		defer mockDB.Close()

		matterID := uuid.New()

		rows := sqlmock.NewRows([]string{"total_billed", "total_hours", "unbilled_amount", "currency"}).
			AddRow("1250.00", "5.5", "400.00", "USD")

		mock.ExpectQuery(`SELECT .+ FROM "billing_items" WHERE matter_id = \$2`).
			WillReturnRows(rows)

		summary, err := repo.SummaryForMatter(context.Background(), matterID)

		assert.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, matterID, summary.MatterID)
		assert.True(t, decimal.NewFromFloat(1250.00).Equal(summary.TotalBilled))
		assert.True(t, decimal.NewFromFloat(5.5).Equal(summary.TotalHours))
		assert.True(t, decimal.NewFromFloat(400.00).Equal(summary.UnbilledAmount))
		assert.Equal(t, "USD", summary.Currency)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero totals for a matter with no items", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingItemRepository(t)
		defer mockDB.Close()

		matterID := uuid.New()

		rows := sqlmock.NewRows([]string{"total_billed", "total_hours", "unbilled_amount", "currency"}).
			AddRow("0", "0", "0", "USD")

		mock.ExpectQuery(`SELECT .+ FROM "billing_items" WHERE matter_id = \$2`).
			WillReturnRows(rows)

		summary, err := repo.SummaryForMatter(context.Background(), matterID)

		assert.NoError(t, err)
		require.NotNil(t, summary)
		assert.True(t, summary.TotalBilled.IsZero())
		assert.True(t, summary.UnbilledAmount.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingItemRepository_Count(t *testing.T) {
	t.Run("counts with uninvoiced filter", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingItemRepository(t)
		defer mockDB.Close()

		matterID := uuid.New()
		uninvoiced := true
		filter := billing.BillingItemFilter{MatterID: &matterID, Uninvoiced: &uninvoiced}

		mock.ExpectQuery(`SELECT count\(\*\) FROM "billing_items" WHERE matter_id = \$1 AND invoice_id IS NULL`).
			WithArgs(matterID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
