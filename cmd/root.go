package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/passosperdidos/parlamento-backend/internal/db"
	"github.com/passosperdidos/parlamento-backend/internal/feed"
	"github.com/passosperdidos/parlamento-backend/internal/ingest"
	"github.com/passosperdidos/parlamento-backend/internal/logger"
	"github.com/passosperdidos/parlamento-backend/internal/repos"
)

var rootCmd = &cobra.Command{
	Use:   "parlamento",
	Short: "Tracker for Portuguese parliamentary legislative initiatives",
	Long: `parlamento ingests the Parlamento open-data feed into a relational
model and serves a filterable read API over it.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs after bootstrap.
type app struct {
	log   *logger.Logger
	pg    *db.PostgresService
	repos appRepos
}

type appRepos struct {
	legislatures repos.LegislatureRepo
	initiatives  repos.InitiativeRepo
	authors      repos.AuthorRepo
	phases       repos.PhaseRepo
	attachments  repos.AttachmentRepo
	publications repos.PublicationRepo
	votes        repos.VoteRepo
	commissions  repos.CommissionRepo
	debates      repos.DebateRepo
	phaseRecords repos.PhaseRecordRepo
}

func bootstrap() (*app, error) {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	gormDB := pg.DB()
	return &app{
		log: log,
		pg:  pg,
		repos: appRepos{
			legislatures: repos.NewLegislatureRepo(gormDB, log),
			initiatives:  repos.NewInitiativeRepo(gormDB, log),
			authors:      repos.NewAuthorRepo(gormDB, log),
			phases:       repos.NewPhaseRepo(gormDB, log),
			attachments:  repos.NewAttachmentRepo(gormDB, log),
			publications: repos.NewPublicationRepo(gormDB, log),
			votes:        repos.NewVoteRepo(gormDB, log),
			commissions:  repos.NewCommissionRepo(gormDB, log),
			debates:      repos.NewDebateRepo(gormDB, log),
			phaseRecords: repos.NewPhaseRecordRepo(gormDB, log),
		},
	}, nil
}

func (a *app) importer() *ingest.Importer {
	return ingest.NewImporter(
		a.pg.DB(),
		feed.NewClient(a.log),
		a.repos.legislatures,
		a.repos.initiatives,
		a.repos.authors,
		a.repos.phases,
		a.repos.attachments,
		a.repos.publications,
		a.repos.votes,
		a.repos.commissions,
		a.repos.debates,
		a.repos.phaseRecords,
		a.log,
	)
}
