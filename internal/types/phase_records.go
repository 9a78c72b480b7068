package types

import (
  "time"

  "github.com/google/uuid"
)

type ApprovedText struct {
  ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Title    string     `gorm:"column:title;size:500;not null" json:"title"`
  TextType string     `gorm:"column:text_type;size:100" json:"text_type"`
  Date     *time.Time `gorm:"column:date" json:"date,omitempty"`
  URL      *string    `gorm:"column:url;size:500" json:"url,omitempty"`
  PhaseID  *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase    *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ApprovedText) TableName() string { return "approved_text" }

type DeputyAppeal struct {
  ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  DeputyName string     `gorm:"column:deputy_name;size:255;not null" json:"deputy_name"`
  Party      *string    `gorm:"column:party;size:100" json:"party,omitempty"`
  Date       *time.Time `gorm:"column:date" json:"date,omitempty"`
  PhaseID    *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase      *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DeputyAppeal) TableName() string { return "deputy_appeal" }

type PartyAppeal struct {
  ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Party   string     `gorm:"column:party;size:100;not null" json:"party"`
  Date    *time.Time `gorm:"column:date" json:"date,omitempty"`
  PhaseID *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase   *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PartyAppeal) TableName() string { return "party_appeal" }

// RelatedInitiative records a cross-reference found under a phase
// ("IniciativasConjuntas"); InitiativeID is the external id of the
// referenced initiative, which may or may not be on file yet.
type RelatedInitiative struct {
  ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  InitiativeID     string     `gorm:"column:initiative_id;size:50;not null" json:"initiative_id"`
  InitiativeType   string     `gorm:"column:initiative_type;size:100" json:"initiative_type"`
  InitiativeNumber string     `gorm:"column:initiative_number;size:50" json:"initiative_number"`
  Legislature      string     `gorm:"column:legislature;size:50" json:"legislature"`
  Title            *string    `gorm:"column:title;type:text" json:"title,omitempty"`
  EntryDate        *time.Time `gorm:"column:entry_date" json:"entry_date,omitempty"`
  Selection        *string    `gorm:"column:selection;size:10" json:"selection,omitempty"`
  PhaseID          *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase            *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RelatedInitiative) TableName() string { return "related_initiative" }
