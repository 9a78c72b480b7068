package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

type AuthorRepo interface {
  FindOrCreate(ctx context.Context, tx *gorm.DB, name string, party *string, authorType string, idCadastro *string) (*types.Author, bool, error)
  DistinctParties(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type authorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
  repoLog := baseLog.With("repo", "AuthorRepo")
  return &authorRepo{db: db, log: repoLog}
}

// FindOrCreate dedupes on the (name, party, author_type) tuple; a nil
// party matches NULL, not the empty string.
func (r *authorRepo) FindOrCreate(ctx context.Context, tx *gorm.DB, name string, party *string, authorType string, idCadastro *string) (*types.Author, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  cond := map[string]interface{}{
    "name":        name,
    "party":       nullable(party),
    "author_type": authorType,
  }
  candidate := &types.Author{
    ID:         uuid.New(),
    Name:       name,
    Party:      party,
    AuthorType: authorType,
    IDCadastro: idCadastro,
  }
  author, created, err := reconcileRow(ctx, transaction, cond, candidate)
  if err != nil {
    return nil, false, err
  }
  if !created && author.IDCadastro == nil && idCadastro != nil {
    author.IDCadastro = idCadastro
    if err := transaction.WithContext(ctx).Save(author).Error; err != nil {
      return nil, false, err
    }
  }
  return author, created, nil
}

func (r *authorRepo) DistinctParties(ctx context.Context, tx *gorm.DB) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var parties []string
  if err := transaction.WithContext(ctx).
    Model(&types.Author{}).
    Where("party IS NOT NULL AND party <> ''").
    Distinct().
    Order("party").
    Pluck("party", &parties).Error; err != nil {
    return nil, err
  }
  return parties, nil
}
