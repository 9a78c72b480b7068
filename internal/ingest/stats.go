package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/passosperdidos/parlamento-backend/internal/types"
)

type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

type VoteResultCount struct {
	Result string `json:"result"`
	Count  int64  `json:"count"`
}

// Stats is a snapshot of the ingested corpus.
type Stats struct {
	Tables         []TableCount      `json:"tables"`
	TopVoteResults []VoteResultCount `json:"top_vote_results"`
}

var statTables = []struct {
	name  string
	model interface{}
}{
	{"legislature", &types.Legislature{}},
	{"initiative", &types.Initiative{}},
	{"author", &types.Author{}},
	{"phase", &types.Phase{}},
	{"attachment", &types.Attachment{}},
	{"publication", &types.Publication{}},
	{"vote", &types.Vote{}},
	{"commission", &types.Commission{}},
	{"commission_document", &types.CommissionDocument{}},
	{"rapporteur", &types.Rapporteur{}},
	{"opinion", &types.Opinion{}},
	{"opinion_request", &types.OpinionRequest{}},
	{"hearing", &types.Hearing{}},
	{"audience", &types.Audience{}},
	{"commission_vote", &types.CommissionVote{}},
	{"final_draft_submission", &types.FinalDraftSubmission{}},
	{"forwarding", &types.Forwarding{}},
	{"debate", &types.Debate{}},
	{"video_link", &types.VideoLink{}},
	{"deputy_debate", &types.DeputyDebate{}},
	{"government_member_debate", &types.GovernmentMemberDebate{}},
	{"guest_debate", &types.GuestDebate{}},
	{"approved_text", &types.ApprovedText{}},
	{"deputy_appeal", &types.DeputyAppeal{}},
	{"party_appeal", &types.PartyAppeal{}},
	{"related_initiative", &types.RelatedInitiative{}},
}

// CollectStats counts every table concurrently and ranks the most
// frequent vote results.
func CollectStats(ctx context.Context, db *gorm.DB, topResults int) (*Stats, error) {
	stats := &Stats{
		Tables: make([]TableCount, len(statTables)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range statTables {
		i, entry := i, entry
		g.Go(func() error {
			var count int64
			if err := db.WithContext(gctx).Model(entry.model).Count(&count).Error; err != nil {
				return err
			}
			stats.Tables[i] = TableCount{Table: entry.name, Count: count}
			return nil
		})
	}
	g.Go(func() error {
		if topResults <= 0 {
			topResults = 10
		}
		return db.WithContext(gctx).
			Model(&types.Vote{}).
			Select("result, COUNT(*) AS count").
			Where("result <> ''").
			Group("result").
			Order("count DESC").
			Limit(topResults).
			Scan(&stats.TopVoteResults).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
