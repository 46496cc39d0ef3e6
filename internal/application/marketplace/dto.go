package marketplace

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
)

// CreatePostingInput contains the input for posting a matter to the marketplace
type CreatePostingInput struct {
	ClientID     uuid.UUID
	Title        string
	Description  string
	PracticeArea string
	RateType     matter.RateType
	Budget       string
	Currency     string
}

// UpdatePostingInput contains the editable posting fields
type UpdatePostingInput struct {
	ActorID      uuid.UUID
	PostingID    uuid.UUID
	Title        string
	Description  string
	PracticeArea string
	Budget       string
	Currency     string
}

// BrowsePostingsInput contains the marketplace browsing parameters
type BrowsePostingsInput struct {
	PracticeArea string
	Page         int
	PageSize     int
}

// SubmitProposalInput contains the input for a mediator's proposal
type SubmitProposalInput struct {
	MediatorID  uuid.UUID
	PostingID   uuid.UUID
	RateType    matter.RateType
	Rate        string
	Currency    string
	Description string
}

// AcceptProposalInput contains the input for accepting a proposal
type AcceptProposalInput struct {
	ActorID    uuid.UUID
	ProposalID uuid.UUID
}

// AcceptProposalResult carries the accepted proposal and the draft matter
// created from it
type AcceptProposalResult struct {
	Proposal *marketplace.Proposal
	Matter   *matter.Matter
}

// ListProposalsInput contains the proposal listing parameters
type ListProposalsInput struct {
	ActorID   uuid.UUID
	PostingID uuid.UUID
	Page      int
	PageSize  int
}
