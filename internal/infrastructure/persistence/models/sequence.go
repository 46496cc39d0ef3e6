package models

// NumberSequenceModel backs the per-year document number allocators
// (matter and invoice numbers).
type NumberSequenceModel struct {
	Kind      string `gorm:"type:varchar(20);primaryKey"`
	Year      int    `gorm:"primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string { return "number_sequences" }
