package persistence

import (
	"context"

	"gorm.io/gorm"

	appmarketplace "github.com/lawmatch/backend/internal/application/marketplace"
	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
)

// GormMarketplaceTransactionScope implements the marketplace TransactionScope
// using GORM transactions.
type GormMarketplaceTransactionScope struct {
	db *gorm.DB
}

// NewGormMarketplaceTransactionScope creates a new GormMarketplaceTransactionScope.
func NewGormMarketplaceTransactionScope(db *gorm.DB) *GormMarketplaceTransactionScope {
	return &GormMarketplaceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormMarketplaceTransactionScope) Execute(ctx context.Context, fn func(repos appmarketplace.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormMarketplaceTransactionalRepositories{tx: tx})
	})
}

type gormMarketplaceTransactionalRepositories struct {
	tx *gorm.DB
}

// PostingRepo returns the posted matter repository scoped to the current transaction.
func (r *gormMarketplaceTransactionalRepositories) PostingRepo() marketplace.PostedMatterRepository {
	return NewGormPostedMatterRepository(r.tx)
}

// ProposalRepo returns the proposal repository scoped to the current transaction.
func (r *gormMarketplaceTransactionalRepositories) ProposalRepo() marketplace.ProposalRepository {
	return NewGormProposalRepository(r.tx)
}

// MatterRepo returns the matter repository scoped to the current transaction.
func (r *gormMarketplaceTransactionalRepositories) MatterRepo() matter.MatterRepository {
	return NewGormMatterRepository(r.tx)
}

var _ appmarketplace.TransactionScope = (*GormMarketplaceTransactionScope)(nil)
var _ appmarketplace.TransactionalRepositories = (*gormMarketplaceTransactionalRepositories)(nil)
