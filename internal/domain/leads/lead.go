package leads

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// LeadSource represents where a lead came from
type LeadSource string

const (
	LeadSourcePostedMatter LeadSource = "POSTED_MATTER"
	LeadSourceForum        LeadSource = "FORUM"
	LeadSourceDirect       LeadSource = "DIRECT"
)

// IsValid checks if the source is a valid LeadSource
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourcePostedMatter, LeadSourceForum, LeadSourceDirect:
		return true
	}
	return false
}

// LeadPriority represents how warm a lead is
type LeadPriority string

const (
	LeadPriorityHot  LeadPriority = "HOT"
	LeadPriorityWarm LeadPriority = "WARM"
	LeadPriorityCold LeadPriority = "COLD"
)

// IsValid checks if the priority is a valid LeadPriority
func (p LeadPriority) IsValid() bool {
	switch p {
	case LeadPriorityHot, LeadPriorityWarm, LeadPriorityCold:
		return true
	}
	return false
}

// LeadStatus represents the lifecycle status of a lead
type LeadStatus string

const (
	LeadStatusActive    LeadStatus = "ACTIVE"
	LeadStatusConverted LeadStatus = "CONVERTED" // Terminal, became a matter
	LeadStatusClosed    LeadStatus = "CLOSED"    // Terminal, went nowhere
)

// IsValid checks if the status is a valid LeadStatus
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusActive, LeadStatusConverted, LeadStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of LeadStatus
func (s LeadStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the lead is in a terminal state
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusConverted || s == LeadStatusClosed
}

// Lead represents a mediator's prospective engagement with a client
type Lead struct {
	shared.BaseAggregateRoot
	MediatorID        uuid.UUID    `json:"mediator_id"`
	ClientID          uuid.UUID    `json:"client_id"`
	Source            LeadSource   `json:"source"`
	Priority          LeadPriority `json:"priority"`
	Note              string       `json:"note"`
	Status            LeadStatus   `json:"status"`
	ConvertedMatterID *uuid.UUID   `json:"converted_matter_id"`
	ConvertedAt       *time.Time   `json:"converted_at"`
	ClosedAt          *time.Time   `json:"closed_at"`
}

// NewLead creates a new active lead
func NewLead(mediatorID, clientID uuid.UUID, source LeadSource, priority LeadPriority, note string) (*Lead, error) {
	if mediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Mediator ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Lead source is not valid")
	}
	if priority == "" {
		priority = LeadPriorityWarm
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Lead priority is not valid")
	}

	return &Lead{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MediatorID:        mediatorID,
		ClientID:          clientID,
		Source:            source,
		Priority:          priority,
		Note:              note,
		Status:            LeadStatusActive,
	}, nil
}

// SetPriority reprioritizes an active lead
func (l *Lead) SetPriority(priority LeadPriority) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reprioritize lead in %s status", l.Status))
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Lead priority is not valid")
	}
	l.Priority = priority
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// UpdateNote replaces the working note
func (l *Lead) UpdateNote(note string) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lead in %s status", l.Status))
	}
	l.Note = note
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Convert marks the lead as converted into the given matter
func (l *Lead) Convert(matterID uuid.UUID) error {
	if l.Status != LeadStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert lead in %s status", l.Status))
	}
	if matterID == uuid.Nil {
		return shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}

	now := time.Now()
	l.Status = LeadStatusConverted
	l.ConvertedMatterID = &matterID
	l.ConvertedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()
	return nil
}

// Close ends an active lead without conversion
func (l *Lead) Close() error {
	if l.Status != LeadStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close lead in %s status", l.Status))
	}

	now := time.Now()
	l.Status = LeadStatusClosed
	l.ClosedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()
	return nil
}

var _ shared.AggregateRoot = (*Lead)(nil)
