package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Email              string                      `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash       string                      `gorm:"type:varchar(255);not null"`
	FirstName          string                      `gorm:"type:varchar(100);not null"`
	LastName           string                      `gorm:"type:varchar(100);not null"`
	Phone              string                      `gorm:"type:varchar(50)"`
	AvatarKey          string                      `gorm:"type:varchar(500)"`
	Kind               identity.UserKind           `gorm:"type:varchar(20);not null;index"`
	Status             identity.UserStatus         `gorm:"type:varchar(20);not null;index"`
	VerificationStatus identity.VerificationStatus `gorm:"type:varchar(20);not null;index"`
	VerifiedAt         *time.Time
	SuspendedAt        *time.Time
	SuspendReason      string `gorm:"type:text"`
	LastLoginAt        *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string { return "users" }

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Phone:              m.Phone,
		AvatarKey:          m.AvatarKey,
		Kind:               m.Kind,
		Status:             m.Status,
		VerificationStatus: m.VerificationStatus,
		VerifiedAt:         m.VerifiedAt,
		SuspendedAt:        m.SuspendedAt,
		SuspendReason:      m.SuspendReason,
		LastLoginAt:        m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.AvatarKey = u.AvatarKey
	m.Kind = u.Kind
	m.Status = u.Status
	m.VerificationStatus = u.VerificationStatus
	m.VerifiedAt = u.VerifiedAt
	m.SuspendedAt = u.SuspendedAt
	m.SuspendReason = u.SuspendReason
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// MediatorProfileModel is the persistence model for mediator profiles.
type MediatorProfileModel struct {
	BaseModel
	UserID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	FirmName          string            `gorm:"type:varchar(255)"`
	Biography         string            `gorm:"type:text"`
	YearsOfExperience int               `gorm:"not null;default:0"`
	PracticeAreas     shared.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	Jurisdictions     shared.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	HourlyRate        decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Currency          string            `gorm:"type:varchar(3);not null;default:'USD'"`
	StripeCustomerID  string            `gorm:"type:varchar(255)"`
	StripeAccountID   string            `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (MediatorProfileModel) TableName() string { return "mediator_profiles" }

// ToDomain converts the persistence model to a domain MediatorProfile
func (m *MediatorProfileModel) ToDomain() *identity.MediatorProfile {
	return &identity.MediatorProfile{
		BaseEntity:        m.BaseModel.ToDomain(),
		UserID:            m.UserID,
		FirmName:          m.FirmName,
		Biography:         m.Biography,
		YearsOfExperience: m.YearsOfExperience,
		PracticeAreas:     m.PracticeAreas,
		Jurisdictions:     m.Jurisdictions,
		HourlyRate:        m.HourlyRate,
		Currency:          m.Currency,
		StripeCustomerID:  m.StripeCustomerID,
		StripeAccountID:   m.StripeAccountID,
	}
}

// FromDomain populates the persistence model from a domain MediatorProfile
func (m *MediatorProfileModel) FromDomain(p *identity.MediatorProfile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.FirmName = p.FirmName
	m.Biography = p.Biography
	m.YearsOfExperience = p.YearsOfExperience
	m.PracticeAreas = p.PracticeAreas
	m.Jurisdictions = p.Jurisdictions
	m.HourlyRate = p.HourlyRate
	m.Currency = p.Currency
	m.StripeCustomerID = p.StripeCustomerID
	m.StripeAccountID = p.StripeAccountID
}

// ClientProfileModel is the persistence model for client profiles.
type ClientProfileModel struct {
	BaseModel
	UserID           uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	Kind             identity.ClientKind `gorm:"type:varchar(20);not null"`
	OrganizationName string              `gorm:"type:varchar(255)"`
	HelpDescription  string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientProfileModel) TableName() string { return "client_profiles" }

// ToDomain converts the persistence model to a domain ClientProfile
func (m *ClientProfileModel) ToDomain() *identity.ClientProfile {
	return &identity.ClientProfile{
		BaseEntity:       m.BaseModel.ToDomain(),
		UserID:           m.UserID,
		Kind:             m.Kind,
		OrganizationName: m.OrganizationName,
		HelpDescription:  m.HelpDescription,
	}
}

// FromDomain populates the persistence model from a domain ClientProfile
func (m *ClientProfileModel) FromDomain(p *identity.ClientProfile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.Kind = p.Kind
	m.OrganizationName = p.OrganizationName
	m.HelpDescription = p.HelpDescription
}
