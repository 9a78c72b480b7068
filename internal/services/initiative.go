package services

import (
  "context"

  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/repos"
  "github.com/passosperdidos/parlamento-backend/internal/types"
)

const (
  defaultPageSize = 10
  maxPageSize     = 100
)

// InitiativePage is the list envelope: total row count, page count and
// nullable next/previous page numbers.
type InitiativePage struct {
  Count      int64               `json:"count"`
  TotalPages int                 `json:"totalPages"`
  Next       *int                `json:"next"`
  Previous   *int                `json:"previous"`
  Results    []*types.Initiative `json:"results"`
}

type InitiativeService interface {
  List(ctx context.Context, filter repos.InitiativeFilter) (*InitiativePage, error)
  Get(ctx context.Context, externalID string) (*types.Initiative, error)
  Types(ctx context.Context) ([]string, error)
  PhaseNames(ctx context.Context) ([]string, error)
  Parties(ctx context.Context) ([]string, error)
}

type initiativeService struct {
  initiatives repos.InitiativeRepo
  phases      repos.PhaseRepo
  authors     repos.AuthorRepo
  log         *logger.Logger
}

func NewInitiativeService(initiatives repos.InitiativeRepo, phases repos.PhaseRepo, authors repos.AuthorRepo, baseLog *logger.Logger) InitiativeService {
  svcLog := baseLog.With("service", "InitiativeService")
  return &initiativeService{initiatives: initiatives, phases: phases, authors: authors, log: svcLog}
}

func (s *initiativeService) List(ctx context.Context, filter repos.InitiativeFilter) (*InitiativePage, error) {
  if filter.Page < 1 {
    filter.Page = 1
  }
  if filter.Size < 1 {
    filter.Size = defaultPageSize
  }
  if filter.Size > maxPageSize {
    filter.Size = maxPageSize
  }

  results, total, err := s.initiatives.List(ctx, nil, filter)
  if err != nil {
    return nil, err
  }

  totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
  page := &InitiativePage{
    Count:      total,
    TotalPages: totalPages,
    Results:    results,
  }
  if page.Results == nil {
    page.Results = []*types.Initiative{}
  }
  if filter.Page < totalPages {
    next := filter.Page + 1
    page.Next = &next
  }
  if filter.Page > 1 && filter.Page <= totalPages+1 {
    prev := filter.Page - 1
    page.Previous = &prev
  }
  return page, nil
}

func (s *initiativeService) Get(ctx context.Context, externalID string) (*types.Initiative, error) {
  return s.initiatives.GetDetail(ctx, nil, externalID)
}

func (s *initiativeService) Types(ctx context.Context) ([]string, error) {
  return s.initiatives.DistinctTypes(ctx, nil)
}

func (s *initiativeService) PhaseNames(ctx context.Context) ([]string, error) {
  return s.phases.DistinctNames(ctx, nil)
}

func (s *initiativeService) Parties(ctx context.Context) ([]string, error) {
  return s.authors.DistinctParties(ctx, nil)
}

var ErrNotFound = gorm.ErrRecordNotFound
