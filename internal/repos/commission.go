package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type CommissionRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Commission) (*types.Commission, bool, error)
  AddDocument(ctx context.Context, tx *gorm.DB, row *types.CommissionDocument) (bool, error)
  AddRapporteur(ctx context.Context, tx *gorm.DB, row *types.Rapporteur) (bool, error)
  AddOpinion(ctx context.Context, tx *gorm.DB, row *types.Opinion) (bool, error)
  AddOpinionRequest(ctx context.Context, tx *gorm.DB, row *types.OpinionRequest) (bool, error)
  AddHearing(ctx context.Context, tx *gorm.DB, row *types.Hearing) (bool, error)
  AddAudience(ctx context.Context, tx *gorm.DB, row *types.Audience) (bool, error)
  AddVote(ctx context.Context, tx *gorm.DB, row *types.CommissionVote) (bool, error)
  AddFinalDraftSubmission(ctx context.Context, tx *gorm.DB, row *types.FinalDraftSubmission) (bool, error)
  AddForwarding(ctx context.Context, tx *gorm.DB, row *types.Forwarding) (bool, error)
}

type commissionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommissionRepo(db *gorm.DB, baseLog *logger.Logger) CommissionRepo {
  repoLog := baseLog.With("repo", "CommissionRepo")
  return &commissionRepo{db: db, log: repoLog}
}

// Reconcile matches on (name, id_commission, phase_id); on a hit the
// scalar fields are refreshed and child rows are merged by their Add
// methods rather than rebuilt.
func (r *commissionRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Commission) (*types.Commission, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  cond := map[string]interface{}{
    "name":          candidate.Name,
    "id_commission": nullable(candidate.IDCommission),
    "phase_id":      candidate.PhaseID,
  }
  var existing types.Commission
  res := transaction.WithContext(ctx).Where(cond).Limit(1).Find(&existing)
  if res.Error != nil {
    return nil, false, res.Error
  }
  if res.RowsAffected > 0 {
    id := existing.ID
    created := existing.CreatedAt
    children := []string{
      "Documents", "Rapporteurs", "ReceivedOpinions", "OpinionRequests",
      "Hearings", "Audiences", "Votes", "FinalDraftSubmissions", "Forwardings",
    }
    updated := *candidate
    updated.ID = id
    updated.CreatedAt = created
    if err := transaction.WithContext(ctx).Omit(children...).Save(&updated).Error; err != nil {
      return nil, false, err
    }
    return &updated, false, nil
  }

  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).
    Omit("Documents", "Rapporteurs", "ReceivedOpinions", "OpinionRequests", "Hearings", "Audiences", "Votes", "FinalDraftSubmissions", "Forwardings").
    Create(candidate).Error; err != nil {
    return nil, false, err
  }
  return candidate, true, nil
}

func (r *commissionRepo) AddDocument(ctx context.Context, tx *gorm.DB, row *types.CommissionDocument) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "title":         row.Title,
    "document_type": row.DocumentType,
    "date":          nullableTime(row.Date),
    "url":           nullable(row.URL),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddRapporteur(ctx context.Context, tx *gorm.DB, row *types.Rapporteur) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "name":          row.Name,
    "party":         nullable(row.Party),
    "date":          nullableTime(row.Date),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddOpinion(ctx context.Context, tx *gorm.DB, row *types.Opinion) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "entity":        row.Entity,
    "date":          nullableTime(row.Date),
    "url":           nullable(row.URL),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddOpinionRequest(ctx context.Context, tx *gorm.DB, row *types.OpinionRequest) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "entity":        row.Entity,
    "date":          nullableTime(row.Date),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddHearing(ctx context.Context, tx *gorm.DB, row *types.Hearing) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "entity":        row.Entity,
    "date":          nullableTime(row.Date),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddAudience(ctx context.Context, tx *gorm.DB, row *types.Audience) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "entity":        row.Entity,
    "date":          nullableTime(row.Date),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddVote(ctx context.Context, tx *gorm.DB, row *types.CommissionVote) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "date":          nullableTime(row.Date),
    "result":        nullable(row.Result),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddFinalDraftSubmission(ctx context.Context, tx *gorm.DB, row *types.FinalDraftSubmission) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "date":          nullableTime(row.Date),
    "text":          nullable(row.Text),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}

func (r *commissionRepo) AddForwarding(ctx context.Context, tx *gorm.DB, row *types.Forwarding) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  cond := map[string]interface{}{
    "entity":        row.Entity,
    "date":          nullableTime(row.Date),
    "commission_id": row.CommissionID,
  }
  row.ID = uuid.New()
  _, created, err := reconcileRow(ctx, transaction, cond, row)
  return created, err
}
