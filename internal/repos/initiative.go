package repos

import (
  "context"
  "strings"
  "time"

  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

// InitiativeFilter narrows List. String fields are ignored when empty;
// text matches are case-insensitive.
type InitiativeFilter struct {
  Type              string
  Types             []string
  TitleContains     string
  AuthorName        string
  AuthorParty       string
  PhaseName         string
  LegislatureNumber string
  InitiativeNumber  string
  DateAfter         *time.Time
  DateBefore        *time.Time
  Page              int
  Size              int
}

type InitiativeRepo interface {
  GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Initiative, error)
  GetDetail(ctx context.Context, tx *gorm.DB, externalID string) (*types.Initiative, error)
  Create(ctx context.Context, tx *gorm.DB, ini *types.Initiative) error
  Save(ctx context.Context, tx *gorm.DB, ini *types.Initiative) error
  ReplaceAuthors(ctx context.Context, tx *gorm.DB, ini *types.Initiative, authors []*types.Author) error
  ReplacePhases(ctx context.Context, tx *gorm.DB, ini *types.Initiative, phases []*types.Phase) error
  AppendVote(ctx context.Context, tx *gorm.DB, ini *types.Initiative, vote *types.Vote) error
  AppendAttachment(ctx context.Context, tx *gorm.DB, ini *types.Initiative, att *types.Attachment) error
  AppendRelated(ctx context.Context, tx *gorm.DB, ini *types.Initiative, related *types.Initiative) error
  List(ctx context.Context, tx *gorm.DB, filter InitiativeFilter) ([]*types.Initiative, int64, error)
  DistinctTypes(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type initiativeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInitiativeRepo(db *gorm.DB, baseLog *logger.Logger) InitiativeRepo {
  repoLog := baseLog.With("repo", "InitiativeRepo")
  return &initiativeRepo{db: db, log: repoLog}
}

func (r *initiativeRepo) GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Initiative, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ini types.Initiative
  if err := transaction.WithContext(ctx).
    Where("external_id = ?", externalID).
    First(&ini).Error; err != nil {
    return nil, err
  }
  return &ini, nil
}

func (r *initiativeRepo) GetDetail(ctx context.Context, tx *gorm.DB, externalID string) (*types.Initiative, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ini types.Initiative
  if err := transaction.WithContext(ctx).
    Preload("Legislature").
    Preload("Authors").
    Preload("Attachments").
    Preload("RelatedInitiatives").
    Preload("Votes").
    Preload("Votes.Publications").
    Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("phase.date") }).
    Preload("Phases.Attachments").
    Preload("Phases.Publications").
    Preload("Phases.Commissions").
    Preload("Phases.Commissions.Documents").
    Preload("Phases.Commissions.Rapporteurs").
    Preload("Phases.Commissions.ReceivedOpinions").
    Preload("Phases.Commissions.OpinionRequests").
    Preload("Phases.Commissions.Hearings").
    Preload("Phases.Commissions.Audiences").
    Preload("Phases.Commissions.Votes").
    Preload("Phases.Commissions.FinalDraftSubmissions").
    Preload("Phases.Commissions.Forwardings").
    Preload("Phases.Debates").
    Preload("Phases.Debates.VideoLinks").
    Preload("Phases.Debates.Deputies").
    Preload("Phases.Debates.GovernmentMembers").
    Preload("Phases.Debates.Guests").
    Preload("Phases.ApprovedTexts").
    Preload("Phases.DeputyAppeals").
    Preload("Phases.PartyAppeals").
    Preload("Phases.RelatedInitiatives").
    Where("external_id = ?", externalID).
    First(&ini).Error; err != nil {
    return nil, err
  }
  return &ini, nil
}

func (r *initiativeRepo) Create(ctx context.Context, tx *gorm.DB, ini *types.Initiative) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Create(ini).Error
}

func (r *initiativeRepo) Save(ctx context.Context, tx *gorm.DB, ini *types.Initiative) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Omit("Authors", "Phases", "Attachments", "Votes", "RelatedInitiatives").
    Save(ini).Error
}

// ReplaceAuthors rebuilds the authorship set from the current feed
// record; stale memberships are dropped, author rows are kept.
func (r *initiativeRepo) ReplaceAuthors(ctx context.Context, tx *gorm.DB, ini *types.Initiative, authors []*types.Author) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Model(ini).Association("Authors").Replace(authors)
}

func (r *initiativeRepo) ReplacePhases(ctx context.Context, tx *gorm.DB, ini *types.Initiative, phases []*types.Phase) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Model(ini).Association("Phases").Replace(phases)
}

func (r *initiativeRepo) AppendVote(ctx context.Context, tx *gorm.DB, ini *types.Initiative, vote *types.Vote) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Model(ini).Association("Votes").Append(vote)
}

func (r *initiativeRepo) AppendAttachment(ctx context.Context, tx *gorm.DB, ini *types.Initiative, att *types.Attachment) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Model(ini).Association("Attachments").Append(att)
}

func (r *initiativeRepo) AppendRelated(ctx context.Context, tx *gorm.DB, ini *types.Initiative, related *types.Initiative) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Model(ini).Association("RelatedInitiatives").Append(related)
}

func (r *initiativeRepo) List(ctx context.Context, tx *gorm.DB, filter InitiativeFilter) ([]*types.Initiative, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  base := transaction.WithContext(ctx).Model(&types.Initiative{})

  if filter.Type != "" {
    base = base.Where("initiative.type = ?", filter.Type)
  }
  if len(filter.Types) > 0 {
    base = base.Where("initiative.type IN ?", filter.Types)
  }
  if filter.TitleContains != "" {
    base = base.Where("LOWER(initiative.title) LIKE ?", "%"+strings.ToLower(filter.TitleContains)+"%")
  }
  if filter.InitiativeNumber != "" {
    base = base.Where("initiative.initiative_number = ?", filter.InitiativeNumber)
  }
  if filter.DateAfter != nil {
    base = base.Where("initiative.date >= ?", *filter.DateAfter)
  }
  if filter.DateBefore != nil {
    base = base.Where("initiative.date <= ?", *filter.DateBefore)
  }
  if filter.LegislatureNumber != "" {
    base = base.
      Joins("JOIN legislature ON legislature.id = initiative.legislature_id").
      Where("legislature.number = ?", filter.LegislatureNumber)
  }
  if filter.AuthorName != "" || filter.AuthorParty != "" {
    base = base.
      Joins("JOIN initiative_authors ON initiative_authors.initiative_id = initiative.id").
      Joins("JOIN author ON author.id = initiative_authors.author_id")
    if filter.AuthorName != "" {
      base = base.Where("LOWER(author.name) LIKE ?", "%"+strings.ToLower(filter.AuthorName)+"%")
    }
    if filter.AuthorParty != "" {
      base = base.Where("LOWER(author.party) = LOWER(?)", filter.AuthorParty)
    }
  }
  if filter.PhaseName != "" {
    base = base.
      Joins("JOIN initiative_phases ON initiative_phases.initiative_id = initiative.id").
      Joins("JOIN phase ON phase.id = initiative_phases.phase_id").
      Where("LOWER(phase.name) = LOWER(?)", filter.PhaseName)
  }

  var total int64
  if err := base.Session(&gorm.Session{}).Distinct("initiative.id").Count(&total).Error; err != nil {
    return nil, 0, err
  }

  page := filter.Page
  if page < 1 {
    page = 1
  }
  size := filter.Size
  if size < 1 {
    size = 10
  }

  var results []*types.Initiative
  if err := base.Session(&gorm.Session{}).
    Distinct("initiative.*").
    Preload("Legislature").
    Preload("Authors").
    Order("initiative.date DESC").
    Offset((page - 1) * size).
    Limit(size).
    Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (r *initiativeRepo) DistinctTypes(ctx context.Context, tx *gorm.DB) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var values []string
  if err := transaction.WithContext(ctx).
    Model(&types.Initiative{}).
    Where("type <> ''").
    Distinct().
    Order("type").
    Pluck("type", &values).Error; err != nil {
    return nil, err
  }
  return values, nil
}
