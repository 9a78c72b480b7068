package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  AuthorTypeDeputy = "Deputado"
  AuthorTypeGroup  = "Grupo"
  AuthorTypeOther  = "Outro"
)

// Author rows are shared across initiatives and deduplicated on
// (name, party, author_type).
type Author struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name       string    `gorm:"column:name;size:255;not null;index:idx_author_identity" json:"name"`
  Party      *string   `gorm:"column:party;size:100;index:idx_author_identity" json:"party,omitempty"`
  AuthorType string    `gorm:"column:author_type;size:50;not null;index:idx_author_identity" json:"author_type"`
  IDCadastro *string   `gorm:"column:id_cadastro;size:50" json:"id_cadastro,omitempty"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Author) TableName() string { return "author" }
