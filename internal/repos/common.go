package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
)

// nullable unwraps pointer fields for map conditions so that a nil
// pointer matches IS NULL instead of comparing against a typed nil.
func nullable(p *string) interface{} {
  if p == nil {
    return nil
  }
  return *p
}

func nullableTime(p *time.Time) interface{} {
  if p == nil {
    return nil
  }
  return *p
}

// reconcileRow finds a row matching cond or creates candidate. Nil
// values in cond match SQL NULL. The bool reports whether a row was
// created.
func reconcileRow[T any](ctx context.Context, tx *gorm.DB, cond map[string]interface{}, candidate *T) (*T, bool, error) {
  var existing T
  res := tx.WithContext(ctx).Where(cond).Limit(1).Find(&existing)
  if res.Error != nil {
    return nil, false, res.Error
  }
  if res.RowsAffected > 0 {
    return &existing, false, nil
  }
  if err := tx.WithContext(ctx).Create(candidate).Error; err != nil {
    return nil, false, err
  }
  return candidate, true, nil
}
