package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type AttachmentRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Attachment) (*types.Attachment, bool, error)
}

type attachmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAttachmentRepo(db *gorm.DB, baseLog *logger.Logger) AttachmentRepo {
  repoLog := baseLog.With("repo", "AttachmentRepo")
  return &attachmentRepo{db: db, log: repoLog}
}

// Reconcile dedupes on (name, file_url, phase_id). Top-level annexes
// carry a nil phase and dedupe among themselves.
func (r *attachmentRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Attachment) (*types.Attachment, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  cond := map[string]interface{}{
    "name":     candidate.Name,
    "file_url": candidate.FileURL,
  }
  if candidate.PhaseID == nil {
    cond["phase_id"] = nil
  } else {
    cond["phase_id"] = *candidate.PhaseID
  }
  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  return reconcileRow(ctx, transaction, cond, candidate)
}
