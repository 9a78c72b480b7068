package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type PhaseRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Phase) (*types.Phase, bool, error)
  DistinctNames(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type phaseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhaseRepo(db *gorm.DB, baseLog *logger.Logger) PhaseRepo {
  repoLog := baseLog.With("repo", "PhaseRepo")
  return &phaseRepo{db: db, log: repoLog}
}

// Reconcile matches on (evt_id, oev_id) when the feed supplies both,
// updating the mutable fields on a hit. Phases without event ids have
// no stable identity and are created fresh each time; membership
// replacement on the initiative retires the stale ones.
func (r *phaseRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Phase) (*types.Phase, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if candidate.EvtID != nil && candidate.OevID != nil {
    var existing types.Phase
    res := transaction.WithContext(ctx).
      Where("evt_id = ? AND oev_id = ?", *candidate.EvtID, *candidate.OevID).
      Limit(1).
      Find(&existing)
    if res.Error != nil {
      return nil, false, res.Error
    }
    if res.RowsAffected > 0 {
      existing.Name = candidate.Name
      existing.Date = candidate.Date
      existing.Code = candidate.Code
      existing.Observation = candidate.Observation
      existing.OevTextID = candidate.OevTextID
      existing.ActID = candidate.ActID
      if err := transaction.WithContext(ctx).
        Omit("Attachments", "Publications", "Commissions", "Debates", "ApprovedTexts", "DeputyAppeals", "PartyAppeals", "RelatedInitiatives").
        Save(&existing).Error; err != nil {
        return nil, false, err
      }
      return &existing, false, nil
    }
  }

  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).
    Omit("Attachments", "Publications", "Commissions", "Debates", "ApprovedTexts", "DeputyAppeals", "PartyAppeals", "RelatedInitiatives").
    Create(candidate).Error; err != nil {
    return nil, false, err
  }
  return candidate, true, nil
}

func (r *phaseRepo) DistinctNames(ctx context.Context, tx *gorm.DB) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var names []string
  if err := transaction.WithContext(ctx).
    Model(&types.Phase{}).
    Where("name <> ''").
    Distinct().
    Order("name").
    Pluck("name", &names).Error; err != nil {
    return nil, err
  }
  return names, nil
}
