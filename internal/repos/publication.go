package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type PublicationRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Publication) (*types.Publication, bool, error)
}

type publicationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
  repoLog := baseLog.With("repo", "PublicationRepo")
  return &publicationRepo{db: db, log: repoLog}
}

// Reconcile dedupes on (date, url) within the owning phase or vote.
func (r *publicationRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Publication) (*types.Publication, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  cond := map[string]interface{}{
    "date": nullableTime(candidate.Date),
    "url":  nullable(candidate.URL),
  }
  if candidate.PhaseID == nil {
    cond["phase_id"] = nil
  } else {
    cond["phase_id"] = *candidate.PhaseID
  }
  if candidate.VoteID == nil {
    cond["vote_id"] = nil
  } else {
    cond["vote_id"] = *candidate.VoteID
  }
  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  return reconcileRow(ctx, transaction, cond, candidate)
}
