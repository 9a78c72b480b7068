package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type LegislatureRepo interface {
  GetOrCreate(ctx context.Context, tx *gorm.DB, number string, start, end *time.Time) (*types.Legislature, bool, error)
  GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*types.Legislature, error)
}

type legislatureRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLegislatureRepo(db *gorm.DB, baseLog *logger.Logger) LegislatureRepo {
  repoLog := baseLog.With("repo", "LegislatureRepo")
  return &legislatureRepo{db: db, log: repoLog}
}

func (r *legislatureRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, number string, start, end *time.Time) (*types.Legislature, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var existing types.Legislature
  res := transaction.WithContext(ctx).Where("number = ?", number).Limit(1).Find(&existing)
  if res.Error != nil {
    return nil, false, res.Error
  }
  if res.RowsAffected > 0 {
    // Older exports omit the term dates; fill them in when a later
    // export carries them.
    changed := false
    if existing.StartDate == nil && start != nil {
      existing.StartDate = start
      changed = true
    }
    if existing.EndDate == nil && end != nil {
      existing.EndDate = end
      changed = true
    }
    if changed {
      if err := transaction.WithContext(ctx).Save(&existing).Error; err != nil {
        return nil, false, err
      }
    }
    return &existing, false, nil
  }

  leg := &types.Legislature{
    ID:        uuid.New(),
    Number:    number,
    StartDate: start,
    EndDate:   end,
  }
  if err := transaction.WithContext(ctx).Create(leg).Error; err != nil {
    return nil, false, err
  }
  return leg, true, nil
}

func (r *legislatureRepo) GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*types.Legislature, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var leg types.Legislature
  if err := transaction.WithContext(ctx).Where("number = ?", number).First(&leg).Error; err != nil {
    return nil, err
  }
  return &leg, nil
}
