package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/shared"
)

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, func()) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInvoiceRepository(gormDB), mock, func() { mockDB.Close() }
}

func TestGormInvoiceRepository_FindAll(t *testing.T) {
	t.Run("party filter binds the actor on both sides", func(t *testing.T) {
		repo, mock, closeDB := newMockInvoiceRepository(t)
		defer closeDB()

		actorID := uuid.New()
		invoiceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "mediator_id", "client_id", "status"}).
			AddRow(invoiceID, 1, actorID, uuid.New(), "OPEN")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE \(mediator_id = \$1 OR client_id = \$2\) ORDER BY created_at DESC LIMIT \$3`).
			WithArgs(actorID, actorID, 20).
			WillReturnRows(rows)

		filter := billing.InvoiceFilter{Filter: shared.DefaultFilter(), PartyID: &actorID}
		invoices, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, actorID, invoices[0].MediatorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an unrelated party sees nothing", func(t *testing.T) {
		repo, mock, closeDB := newMockInvoiceRepository(t)
		defer closeDB()

		strangerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE \(mediator_id = \$1 OR client_id = \$2\)`).
			WithArgs(strangerID, strangerID, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version"}))

		filter := billing.InvoiceFilter{Filter: shared.DefaultFilter(), PartyID: &strangerID}
		invoices, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, invoices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Count(t *testing.T) {
	t.Run("count applies the same party scoping", func(t *testing.T) {
		repo, mock, closeDB := newMockInvoiceRepository(t)
		defer closeDB()

		actorID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE \(mediator_id = \$1 OR client_id = \$2\)`).
			WithArgs(actorID, actorID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		filter := billing.InvoiceFilter{Filter: shared.DefaultFilter(), PartyID: &actorID}
		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
