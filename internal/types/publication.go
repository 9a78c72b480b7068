package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Publication is a diary/journal reference. It hangs off either a
// Phase or a Vote (never both); dedup identity is (date, url, owner).
type Publication struct {
  ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  Date                *time.Time     `gorm:"column:date" json:"date,omitempty"`
  LegislatureCode     *string        `gorm:"column:legislature_code;size:50" json:"legislature_code,omitempty"`
  Number              *string        `gorm:"column:number;size:50" json:"number,omitempty"`
  Session             *string        `gorm:"column:session;size:50" json:"session,omitempty"`
  PublicationType     *string        `gorm:"column:publication_type;size:100" json:"publication_type,omitempty"`
  PublicationTp       *string        `gorm:"column:publication_tp;size:50" json:"publication_tp,omitempty"`
  Supplement          *string        `gorm:"column:supplement;size:50" json:"supplement,omitempty"`
  Pages               datatypes.JSON `gorm:"column:pages;type:jsonb" json:"pages,omitempty"`
  URL                 *string        `gorm:"column:url;size:500" json:"url,omitempty"`
  IDPage              *string        `gorm:"column:id_page;size:50" json:"id_page,omitempty"`
  Observation         *string        `gorm:"column:observation;type:text" json:"observation,omitempty"`
  IDDebate            *string        `gorm:"column:id_debate;size:50" json:"id_debate,omitempty"`
  IDIntervention      *string        `gorm:"column:id_intervention;size:50" json:"id_intervention,omitempty"`
  IDAct               *string        `gorm:"column:id_act;size:50" json:"id_act,omitempty"`
  FinalDiarySupplement *string       `gorm:"column:final_diary_supplement;size:100" json:"final_diary_supplement,omitempty"`

  PhaseID *uuid.UUID `gorm:"column:phase_id;type:uuid;index" json:"phase_id,omitempty"`
  Phase   *Phase     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`
  VoteID  *uuid.UUID `gorm:"column:vote_id;type:uuid;index" json:"vote_id,omitempty"`
  Vote    *Vote      `gorm:"constraint:OnDelete:CASCADE;foreignKey:VoteID;references:ID" json:"-"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Publication) TableName() string { return "publication" }
