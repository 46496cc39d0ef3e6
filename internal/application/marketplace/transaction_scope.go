package marketplace

import (
	"context"

	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
)

// TransactionScope provides transactional access to the repositories the
// proposal acceptance flow writes. When a function is executed within a
// scope, all repository operations share one database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the marketplace and matter
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// PostingRepo returns the posted matter repository scoped to the current transaction
	PostingRepo() marketplace.PostedMatterRepository
	// ProposalRepo returns the proposal repository scoped to the current transaction
	ProposalRepo() marketplace.ProposalRepository
	// MatterRepo returns the matter repository scoped to the current transaction
	MatterRepo() matter.MatterRepository
}

// NoOpTransactionScope runs the function against the wrapped repositories
// without a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	postingRepo  marketplace.PostedMatterRepository
	proposalRepo marketplace.ProposalRepository
	matterRepo   matter.MatterRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	postingRepo marketplace.PostedMatterRepository,
	proposalRepo marketplace.ProposalRepository,
	matterRepo matter.MatterRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		postingRepo:  postingRepo,
		proposalRepo: proposalRepo,
		matterRepo:   matterRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PostingRepo returns the posted matter repository.
func (s *NoOpTransactionScope) PostingRepo() marketplace.PostedMatterRepository {
	return s.postingRepo
}

// ProposalRepo returns the proposal repository.
func (s *NoOpTransactionScope) ProposalRepo() marketplace.ProposalRepository {
	return s.proposalRepo
}

// MatterRepo returns the matter repository.
func (s *NoOpTransactionScope) MatterRepo() matter.MatterRepository {
	return s.matterRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
