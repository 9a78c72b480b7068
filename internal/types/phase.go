package types

import (
  "time"

  "github.com/google/uuid"
)

// Phase is a procedural event in an initiative's lifecycle. When the
// feed supplies both EvtID and OevID the pair is the phase identity;
// otherwise a phase is matched on its full field tuple.
type Phase struct {
  ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string     `gorm:"column:name;size:1000;index;not null" json:"name"`
  Date        *time.Time `gorm:"column:date;index" json:"date,omitempty"`
  Code        *string    `gorm:"column:code;size:50" json:"code,omitempty"`
  Observation *string    `gorm:"column:observation;type:text" json:"observation,omitempty"`
  EvtID       *string    `gorm:"column:evt_id;size:50;index:idx_phase_event" json:"evt_id,omitempty"`
  OevID       *string    `gorm:"column:oev_id;size:50;index:idx_phase_event" json:"oev_id,omitempty"`
  OevTextID   *string    `gorm:"column:oev_text_id;size:50" json:"oev_text_id,omitempty"`
  ActID       *string    `gorm:"column:act_id;size:50" json:"act_id,omitempty"`

  Attachments        []*Attachment        `gorm:"foreignKey:PhaseID" json:"attachments,omitempty"`
  Publications       []*Publication       `gorm:"foreignKey:PhaseID" json:"publications,omitempty"`
  Commissions        []*Commission        `gorm:"foreignKey:PhaseID" json:"commissions,omitempty"`
  Debates            []*Debate            `gorm:"foreignKey:PhaseID" json:"debates,omitempty"`
  ApprovedTexts      []*ApprovedText      `gorm:"foreignKey:PhaseID" json:"approved_texts,omitempty"`
  DeputyAppeals      []*DeputyAppeal      `gorm:"foreignKey:PhaseID" json:"deputy_appeals,omitempty"`
  PartyAppeals       []*PartyAppeal       `gorm:"foreignKey:PhaseID" json:"party_appeals,omitempty"`
  RelatedInitiatives []*RelatedInitiative `gorm:"foreignKey:PhaseID" json:"related_initiatives,omitempty"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Phase) TableName() string { return "phase" }
