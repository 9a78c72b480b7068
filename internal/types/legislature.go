package types

import (
  "time"

  "github.com/google/uuid"
)

type Legislature struct {
  ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Number    string     `gorm:"column:number;size:50;uniqueIndex;not null" json:"number"`
  StartDate *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
  EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
  CreatedAt time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Legislature) TableName() string { return "legislature" }
