package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

// PhaseRecordRepo merges the flat per-phase record collections:
// approved texts, appeals and cross-referenced initiatives.
type PhaseRecordRepo interface {
  AddApprovedText(ctx context.Context, tx *gorm.DB, row *types.ApprovedText) (bool, error)
  AddDeputyAppeal(ctx context.Context, tx *gorm.DB, row *types.DeputyAppeal) (bool, error)
  AddPartyAppeal(ctx context.Context, tx *gorm.DB, row *types.PartyAppeal) (bool, error)
  AddRelatedInitiative(ctx context.Context, tx *gorm.DB, row *types.RelatedInitiative) (bool, error)
}

type phaseRecordRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhaseRecordRepo(db *gorm.DB, baseLog *logger.Logger) PhaseRecordRepo {
  repoLog := baseLog.With("repo", "PhaseRecordRepo")
  return &phaseRecordRepo{db: db, log: repoLog}
}

func phaseCond(phaseID *uuid.UUID) interface{} {
  if phaseID == nil {
    return nil
  }
  return *phaseID
}

func (r *phaseRecordRepo) AddApprovedText(ctx context.Context, tx *gorm.DB, row *types.ApprovedText) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "title":     row.Title,
    "text_type": row.TextType,
    "date":      nullableTime(row.Date),
    "url":       nullable(row.URL),
    "phase_id":  phaseCond(row.PhaseID),
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *phaseRecordRepo) AddDeputyAppeal(ctx context.Context, tx *gorm.DB, row *types.DeputyAppeal) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "deputy_name": row.DeputyName,
    "party":       nullable(row.Party),
    "date":        nullableTime(row.Date),
    "phase_id":    phaseCond(row.PhaseID),
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *phaseRecordRepo) AddPartyAppeal(ctx context.Context, tx *gorm.DB, row *types.PartyAppeal) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "party":    row.Party,
    "date":     nullableTime(row.Date),
    "phase_id": phaseCond(row.PhaseID),
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *phaseRecordRepo) AddRelatedInitiative(ctx context.Context, tx *gorm.DB, row *types.RelatedInitiative) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "initiative_id": row.InitiativeID,
    "phase_id":      phaseCond(row.PhaseID),
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}
