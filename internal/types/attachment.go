package types

import (
  "time"

  "github.com/google/uuid"
)

// Attachment is owned by a Phase when it arrives under a feed event,
// or linked many-to-many to an Initiative for top-level annexes.
type Attachment struct {
  ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Name    string     `gorm:"column:name;size:500;not null" json:"name"`
  FileURL string     `gorm:"column:file_url;size:500" json:"file_url"`
  PhaseID *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase   *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Attachment) TableName() string { return "attachment" }
