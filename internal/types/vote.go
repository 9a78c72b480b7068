package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Vote is a roll-call decision. VoteID is the feed identifier when
// present; otherwise identity falls back to (date, result, details).
// Breakdown holds {"a_favor": [...], "contra": [...], "abstencao": [...]}
// parsed out of the Details markup.
type Vote struct {
  ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  VoteID      *string        `gorm:"column:vote_id;size:50;index" json:"vote_id,omitempty"`
  Date        *time.Time     `gorm:"column:date;index" json:"date,omitempty"`
  Result      string         `gorm:"column:result;size:50" json:"result"`
  Details     *string        `gorm:"column:details;type:text" json:"details,omitempty"`
  Description *string        `gorm:"column:description;type:text" json:"description,omitempty"`
  Breakdown   datatypes.JSON `gorm:"column:breakdown;type:jsonb" json:"breakdown,omitempty"`
  Meeting     *string        `gorm:"column:meeting;size:50" json:"meeting,omitempty"`
  MeetingType *string        `gorm:"column:meeting_type;size:50" json:"meeting_type,omitempty"`
  Unanimous   *string        `gorm:"column:unanimous;size:50" json:"unanimous,omitempty"`
  Absences    datatypes.JSON `gorm:"column:absences;type:jsonb" json:"absences,omitempty"`

  Publications []*Publication `gorm:"foreignKey:VoteID" json:"publications,omitempty"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Vote) TableName() string { return "vote" }
