package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Initiative is the central aggregate ("Projeto de Lei"). ExternalID is
// the feed identifier and the only re-ingestion join key.
type Initiative struct {
  ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  ExternalID    string       `gorm:"column:external_id;size:1000;uniqueIndex;not null" json:"external_id"`
  Title         string       `gorm:"column:title;type:text;index;not null" json:"title"`
  Type          string       `gorm:"column:type;size:255;index" json:"type"`
  LegislatureID uuid.UUID    `gorm:"column:legislature_id;type:uuid;not null;index" json:"legislature_id"`
  Legislature   *Legislature `gorm:"constraint:OnDelete:CASCADE;foreignKey:LegislatureID;references:ID" json:"legislature,omitempty"`
  Date          *time.Time   `gorm:"column:date;index" json:"date,omitempty"`
  Link          string       `gorm:"column:link;size:500" json:"link"`
  Description   *string      `gorm:"column:description;type:text" json:"description,omitempty"`

  InitiativeID          *string `gorm:"column:initiative_id;size:50" json:"initiative_id,omitempty"`
  InitiativeLegislature *string `gorm:"column:initiative_legislature;size:10" json:"initiative_legislature,omitempty"`
  InitiativeNumber      *string `gorm:"column:initiative_number;size:20" json:"initiative_number,omitempty"`
  InitiativeTypeCode    *string `gorm:"column:initiative_type_code;size:10" json:"initiative_type_code,omitempty"`
  InitiativeSelection   *string `gorm:"column:initiative_selection;size:10" json:"initiative_selection,omitempty"`
  SubstituteText        *string `gorm:"column:substitute_text;size:10" json:"substitute_text,omitempty"`
  SubstituteTextField   *string `gorm:"column:substitute_text_field;type:text" json:"substitute_text_field,omitempty"`
  Observation           *string `gorm:"column:observation;type:text" json:"observation,omitempty"`
  Epigraph              *string `gorm:"column:epigraph;type:text" json:"epigraph,omitempty"`
  TextLink              *string `gorm:"column:text_link;size:500" json:"text_link,omitempty"`
  PublicationURL        *string `gorm:"column:publication_url;size:500" json:"publication_url,omitempty"`
  PublicationDate       *time.Time `gorm:"column:publication_date" json:"publication_date,omitempty"`

  // Opaque cross-reference blobs carried through from the feed.
  EuropeanInitiatives   datatypes.JSON `gorm:"column:european_initiatives;type:jsonb" json:"european_initiatives,omitempty"`
  OriginInitiatives     datatypes.JSON `gorm:"column:origin_initiatives;type:jsonb" json:"origin_initiatives,omitempty"`
  OriginatedInitiatives datatypes.JSON `gorm:"column:originated_initiatives;type:jsonb" json:"originated_initiatives,omitempty"`

  Authors     []*Author     `gorm:"many2many:initiative_authors" json:"authors,omitempty"`
  Phases      []*Phase      `gorm:"many2many:initiative_phases" json:"phases,omitempty"`
  Attachments []*Attachment `gorm:"many2many:initiative_attachments" json:"attachments,omitempty"`
  Votes       []*Vote       `gorm:"many2many:initiative_votes" json:"votes,omitempty"`
  // Asymmetric self-reference: A relating to B does not imply the inverse.
  RelatedInitiatives []*Initiative `gorm:"many2many:initiative_related;joinForeignKey:initiative_id;joinReferences:related_id" json:"related_initiatives,omitempty"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Initiative) TableName() string { return "initiative" }
