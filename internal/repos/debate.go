package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type DebateRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Debate) (*types.Debate, bool, error)
  AddVideoLink(ctx context.Context, tx *gorm.DB, row *types.VideoLink) (bool, error)
  AddDeputy(ctx context.Context, tx *gorm.DB, row *types.DeputyDebate) (bool, error)
  AddGovernmentMember(ctx context.Context, tx *gorm.DB, row *types.GovernmentMemberDebate) (bool, error)
  AddGuest(ctx context.Context, tx *gorm.DB, row *types.GuestDebate) (bool, error)
}

type debateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDebateRepo(db *gorm.DB, baseLog *logger.Logger) DebateRepo {
  repoLog := baseLog.With("repo", "DebateRepo")
  return &debateRepo{db: db, log: repoLog}
}

// Reconcile matches on (date, phase_label, phase_id) and refreshes the
// scalar fields on a hit. Participant rows are merged, never rebuilt.
func (r *debateRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Debate) (*types.Debate, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  cond := map[string]interface{}{
    "date":        nullableTime(candidate.Date),
    "phase_label": nullable(candidate.PhaseLabel),
    "phase_id":    candidate.PhaseID,
  }
  var existing types.Debate
  res := transaction.WithContext(ctx).Where(cond).Limit(1).Find(&existing)
  if res.Error != nil {
    return nil, false, res.Error
  }
  if res.RowsAffected > 0 {
    existing.SessionPhase = candidate.SessionPhase
    existing.StartTime = candidate.StartTime
    existing.EndTime = candidate.EndTime
    existing.Summary = candidate.Summary
    existing.Content = candidate.Content
    if err := transaction.WithContext(ctx).
      Omit("VideoLinks", "Deputies", "GovernmentMembers", "Guests").
      Save(&existing).Error; err != nil {
      return nil, false, err
    }
    return &existing, false, nil
  }

  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).
    Omit("VideoLinks", "Deputies", "GovernmentMembers", "Guests").
    Create(candidate).Error; err != nil {
    return nil, false, err
  }
  return candidate, true, nil
}

func (r *debateRepo) AddVideoLink(ctx context.Context, tx *gorm.DB, row *types.VideoLink) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "url":       row.URL,
    "debate_id": row.DebateID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *debateRepo) AddDeputy(ctx context.Context, tx *gorm.DB, row *types.DeputyDebate) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "name":      row.Name,
    "party":     nullable(row.Party),
    "debate_id": row.DebateID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *debateRepo) AddGovernmentMember(ctx context.Context, tx *gorm.DB, row *types.GovernmentMemberDebate) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "name":       row.Name,
    "position":   nullable(row.Position),
    "government": nullable(row.Government),
    "debate_id":  row.DebateID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *debateRepo) AddGuest(ctx context.Context, tx *gorm.DB, row *types.GuestDebate) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "name":      nullable(row.Name),
    "position":  nullable(row.Position),
    "honor":     nullable(row.Honor),
    "country":   nullable(row.Country),
    "debate_id": row.DebateID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}
