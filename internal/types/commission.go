package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Commission is a committee review episode under a Phase, identified by
// (name, id_commission, phase). Everything it owns cascades with it.
type Commission struct {
  ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Name         string     `gorm:"column:name;size:500;not null" json:"name"`
  Number       *string    `gorm:"column:number;size:50" json:"number,omitempty"`
  IDCommission *string    `gorm:"column:id_commission;size:50" json:"id_commission,omitempty"`
  AccID        *string    `gorm:"column:acc_id;size:50" json:"acc_id,omitempty"`
  Competent    *string    `gorm:"column:competent;size:10" json:"competent,omitempty"`
  Observation  *string    `gorm:"column:observation;type:text" json:"observation,omitempty"`

  DistributionDate            *time.Time `gorm:"column:distribution_date" json:"distribution_date,omitempty"`
  SubcommissionDistribution   *string    `gorm:"column:subcommission_distribution;type:text" json:"subcommission_distribution,omitempty"`
  SubcommissionDistributionDate *time.Time `gorm:"column:subcommission_distribution_date" json:"subcommission_distribution_date,omitempty"`
  EntryDate                   *time.Time `gorm:"column:entry_date" json:"entry_date,omitempty"`
  PublicAppreciationStartDate *time.Time `gorm:"column:public_appreciation_start_date" json:"public_appreciation_start_date,omitempty"`
  PublicAppreciationEndDate   *time.Time `gorm:"column:public_appreciation_end_date" json:"public_appreciation_end_date,omitempty"`
  NoOpinionReasonDate         *time.Time `gorm:"column:no_opinion_reason_date" json:"no_opinion_reason_date,omitempty"`
  ReportDate                  *time.Time `gorm:"column:report_date" json:"report_date,omitempty"`
  ForwardingDate              *time.Time `gorm:"column:forwarding_date" json:"forwarding_date,omitempty"`
  PlenarySchedulingRequestDate *time.Time `gorm:"column:plenary_scheduling_request_date" json:"plenary_scheduling_request_date,omitempty"`
  AwaitsPlenaryScheduling     *string    `gorm:"column:awaits_plenary_scheduling;size:50" json:"awaits_plenary_scheduling,omitempty"`
  PlenarySchedulingDate       *time.Time `gorm:"column:plenary_scheduling_date" json:"plenary_scheduling_date,omitempty"`
  DiscussionSchedulingDate    *time.Time `gorm:"column:discussion_scheduling_date" json:"discussion_scheduling_date,omitempty"`
  PlenarySchedulingGP         *string    `gorm:"column:plenary_scheduling_gp;size:50" json:"plenary_scheduling_gp,omitempty"`
  NoOpinionReason             *string    `gorm:"column:no_opinion_reason;type:text" json:"no_opinion_reason,omitempty"`
  Extended                    *string    `gorm:"column:extended;size:10" json:"extended,omitempty"`
  Sigla                       *string    `gorm:"column:sigla;size:50" json:"sigla,omitempty"`
  LegislatureRef              *string    `gorm:"column:legislature_ref;size:50" json:"legislature_ref,omitempty"`
  SessionRef                  *string    `gorm:"column:session_ref;size:50" json:"session_ref,omitempty"`

  PhaseID uuid.UUID `gorm:"column:phase_id;type:uuid;not null;index" json:"phase_id"`
  Phase   *Phase    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"-"`

  Documents             []*CommissionDocument   `gorm:"foreignKey:CommissionID" json:"documents,omitempty"`
  Rapporteurs           []*Rapporteur           `gorm:"foreignKey:CommissionID" json:"rapporteurs,omitempty"`
  ReceivedOpinions      []*Opinion              `gorm:"foreignKey:CommissionID" json:"received_opinions,omitempty"`
  OpinionRequests       []*OpinionRequest       `gorm:"foreignKey:CommissionID" json:"opinion_requests,omitempty"`
  Hearings              []*Hearing              `gorm:"foreignKey:CommissionID" json:"hearings,omitempty"`
  Audiences             []*Audience             `gorm:"foreignKey:CommissionID" json:"audiences,omitempty"`
  Votes                 []*CommissionVote       `gorm:"foreignKey:CommissionID" json:"votes,omitempty"`
  FinalDraftSubmissions []*FinalDraftSubmission `gorm:"foreignKey:CommissionID" json:"final_draft_submissions,omitempty"`
  Forwardings           []*Forwarding           `gorm:"foreignKey:CommissionID" json:"forwardings,omitempty"`

  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Commission) TableName() string { return "commission" }

type CommissionDocument struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Title        string      `gorm:"column:title;size:500;not null" json:"title"`
  DocumentType string      `gorm:"column:document_type;size:100" json:"document_type"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  URL          *string     `gorm:"column:url;size:500" json:"url,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (CommissionDocument) TableName() string { return "commission_document" }

type Rapporteur struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name         string      `gorm:"column:name;size:255;not null" json:"name"`
  Party        *string     `gorm:"column:party;size:100" json:"party,omitempty"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Rapporteur) TableName() string { return "rapporteur" }

type Opinion struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Entity       string      `gorm:"column:entity;size:255;not null" json:"entity"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  URL          *string     `gorm:"column:url;size:500" json:"url,omitempty"`
  DocumentType *string     `gorm:"column:document_type;size:100" json:"document_type,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Opinion) TableName() string { return "opinion" }

type OpinionRequest struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Entity       string      `gorm:"column:entity;size:255;not null" json:"entity"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (OpinionRequest) TableName() string { return "opinion_request" }

type Hearing struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Entity       string      `gorm:"column:entity;size:255;not null" json:"entity"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Hearing) TableName() string { return "hearing" }

type Audience struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Entity       string      `gorm:"column:entity;size:255;not null" json:"entity"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Audience) TableName() string { return "audience" }

type CommissionVote struct {
  ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  Date         *time.Time     `gorm:"column:date" json:"date,omitempty"`
  Result       *string        `gorm:"column:result;size:100" json:"result,omitempty"`
  Favor        datatypes.JSON `gorm:"column:favor;type:jsonb" json:"favor,omitempty"`
  Against      datatypes.JSON `gorm:"column:against;type:jsonb" json:"against,omitempty"`
  Abstention   datatypes.JSON `gorm:"column:abstention;type:jsonb" json:"abstention,omitempty"`
  CommissionID uuid.UUID      `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (CommissionVote) TableName() string { return "commission_vote" }

type FinalDraftSubmission struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  Text         *string     `gorm:"column:text;type:text" json:"text,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (FinalDraftSubmission) TableName() string { return "final_draft_submission" }

type Forwarding struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Entity       string      `gorm:"column:entity;size:255;not null" json:"entity"`
  Date         *time.Time  `gorm:"column:date" json:"date,omitempty"`
  CommissionID uuid.UUID   `gorm:"column:commission_id;type:uuid;not null;index" json:"commission_id"`
  Commission   *Commission `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommissionID;references:ID" json:"-"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Forwarding) TableName() string { return "forwarding" }
