package services

import (
  "bytes"
  "context"
  "encoding/json"

  "gorm.io/datatypes"

  "github.com/passosperdidos/parlamento-backend/internal/ingest"
  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/repos"
)

// VoteFixResult summarises one re-parse pass.
type VoteFixResult struct {
  Processed int `json:"processed"`
  Updated   int `json:"updated"`
  Failed    int `json:"failed"`
}

// VoteFixService re-derives the structured breakdown of stored votes
// from their raw detail markup, for when the parser improves after the
// votes were first ingested.
type VoteFixService interface {
  RefreshBreakdowns(ctx context.Context, batchSize int) (*VoteFixResult, error)
}

type voteFixService struct {
  votes repos.VoteRepo
  log   *logger.Logger
}

func NewVoteFixService(votes repos.VoteRepo, baseLog *logger.Logger) VoteFixService {
  svcLog := baseLog.With("service", "VoteFixService")
  return &voteFixService{votes: votes, log: svcLog}
}

func (s *voteFixService) RefreshBreakdowns(ctx context.Context, batchSize int) (*VoteFixResult, error) {
  if batchSize < 1 {
    batchSize = 200
  }

  result := &VoteFixResult{}
  offset := 0
  for {
    if err := ctx.Err(); err != nil {
      return result, err
    }
    batch, err := s.votes.ListWithDetails(ctx, nil, offset, batchSize)
    if err != nil {
      return result, err
    }
    if len(batch) == 0 {
      break
    }
    for _, vote := range batch {
      result.Processed++
      breakdown := ingest.ParseVoteDetails(*vote.Details)
      blob, err := json.Marshal(breakdown)
      if err != nil {
        result.Failed++
        continue
      }
      if bytes.Equal([]byte(vote.Breakdown), blob) {
        continue
      }
      vote.Breakdown = datatypes.JSON(blob)
      if err := s.votes.Save(ctx, nil, vote); err != nil {
        result.Failed++
        s.log.Error("saving vote breakdown", "vote", vote.ID, "error", err)
        continue
      }
      result.Updated++
    }
    offset += len(batch)
  }

  s.log.Info("vote breakdown refresh done",
    "processed", result.Processed,
    "updated", result.Updated,
    "failed", result.Failed)
  return result, nil
}
