package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type VoteRepo interface {
  Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Vote) (*types.Vote, bool, error)
  ListWithDetails(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Vote, error)
  Save(ctx context.Context, tx *gorm.DB, vote *types.Vote) error
}

type voteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
  repoLog := baseLog.With("repo", "VoteRepo")
  return &voteRepo{db: db, log: repoLog}
}

// Reconcile matches on the feed vote id when present, falling back to
// (date, result, details). On a hit the mutable fields are refreshed
// from the candidate.
func (r *voteRepo) Reconcile(ctx context.Context, tx *gorm.DB, candidate *types.Vote) (*types.Vote, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var cond map[string]interface{}
  if candidate.VoteID != nil {
    cond = map[string]interface{}{"vote_id": *candidate.VoteID}
  } else {
    cond = map[string]interface{}{
      "date":    nullableTime(candidate.Date),
      "result":  candidate.Result,
      "details": nullable(candidate.Details),
    }
  }

  var existing types.Vote
  res := transaction.WithContext(ctx).Where(cond).Limit(1).Find(&existing)
  if res.Error != nil {
    return nil, false, res.Error
  }
  if res.RowsAffected > 0 {
    existing.Date = candidate.Date
    existing.Result = candidate.Result
    existing.Details = candidate.Details
    existing.Description = candidate.Description
    existing.Breakdown = candidate.Breakdown
    existing.Meeting = candidate.Meeting
    existing.MeetingType = candidate.MeetingType
    existing.Unanimous = candidate.Unanimous
    existing.Absences = candidate.Absences
    if err := transaction.WithContext(ctx).Omit("Publications").Save(&existing).Error; err != nil {
      return nil, false, err
    }
    return &existing, false, nil
  }

  if candidate.ID == uuid.Nil {
    candidate.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Omit("Publications").Create(candidate).Error; err != nil {
    return nil, false, err
  }
  return candidate, true, nil
}

func (r *voteRepo) ListWithDetails(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Vote, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var votes []*types.Vote
  if err := transaction.WithContext(ctx).
    Where("details IS NOT NULL AND details <> ''").
    Order("created_at").
    Offset(offset).
    Limit(limit).
    Find(&votes).Error; err != nil {
    return nil, err
  }
  return votes, nil
}

func (r *voteRepo) Save(ctx context.Context, tx *gorm.DB, vote *types.Vote) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Omit("Publications").Save(vote).Error
}
