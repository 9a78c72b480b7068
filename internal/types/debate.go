package types

import (
  "time"

  "github.com/google/uuid"
)

// Debate is a plenary/committee debate session under a Phase,
// identified by (date, phase label, owning phase). PhaseLabel is the
// feed's "faseDebate" string, distinct from the owning Phase row.
type Debate struct {
  ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Date         *time.Time `gorm:"column:date" json:"date,omitempty"`
  PhaseLabel   *string    `gorm:"column:phase_label;size:100" json:"phase_label,omitempty"`
  SessionPhase *string    `gorm:"column:session_phase;size:10" json:"session_phase,omitempty"`
  StartTime    *string    `gorm:"column:start_time;size:10" json:"start_time,omitempty"`
  EndTime      *string    `gorm:"column:end_time;size:10" json:"end_time,omitempty"`
  Summary      *string    `gorm:"column:summary;type:text" json:"summary,omitempty"`
  Content      *string    `gorm:"column:content;type:text" json:"content,omitempty"`

  PhaseID uuid.UUID `gorm:"column:phase_id;type:uuid;not null;index" json:"phase_id"`
  Phase   *Phase    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  VideoLinks        []*VideoLink              `gorm:"foreignKey:DebateID" json:"video_links,omitempty"`
  Deputies          []*DeputyDebate           `gorm:"foreignKey:DebateID" json:"deputies,omitempty"`
  GovernmentMembers []*GovernmentMemberDebate `gorm:"foreignKey:DebateID" json:"government_members,omitempty"`
  Guests            []*GuestDebate            `gorm:"foreignKey:DebateID" json:"guests,omitempty"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Debate) TableName() string { return "debate" }

type VideoLink struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  URL       string    `gorm:"column:url;size:500;not null" json:"url"`
  DebateID  uuid.UUID `gorm:"column:debate_id;type:uuid;not null;index" json:"debate_id"`
  Debate    *Debate   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DebateID;references:ID" json:"-"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VideoLink) TableName() string { return "video_link" }

type DeputyDebate struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name      string    `gorm:"column:name;size:255;not null" json:"name"`
  Party     *string   `gorm:"column:party;size:100" json:"party,omitempty"`
  DebateID  uuid.UUID `gorm:"column:debate_id;type:uuid;not null;index" json:"debate_id"`
  Debate    *Debate   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DebateID;references:ID" json:"-"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DeputyDebate) TableName() string { return "deputy_debate" }

type GovernmentMemberDebate struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name       string    `gorm:"column:name;size:255;not null" json:"name"`
  Position   *string   `gorm:"column:position;size:255" json:"position,omitempty"`
  Government *string   `gorm:"column:government;size:255" json:"government,omitempty"`
  DebateID   uuid.UUID `gorm:"column:debate_id;type:uuid;not null;index" json:"debate_id"`
  Debate     *Debate   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DebateID;references:ID" json:"-"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (GovernmentMemberDebate) TableName() string { return "government_member_debate" }

type GuestDebate struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name      *string   `gorm:"column:name;size:255" json:"name,omitempty"`
  Position  *string   `gorm:"column:position;size:255" json:"position,omitempty"`
  Honor     *string   `gorm:"column:honor;size:255" json:"honor,omitempty"`
  Country   *string   `gorm:"column:country;size:100" json:"country,omitempty"`
  DebateID  uuid.UUID `gorm:"column:debate_id;type:uuid;not null;index" json:"debate_id"`
  Debate    *Debate   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DebateID;references:ID" json:"-"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (GuestDebate) TableName() string { return "guest_debate" }
