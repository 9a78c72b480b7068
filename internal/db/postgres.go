package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/types"
  "github.com/passosperdidos/parlamento-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "parlamento", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

// Migrate runs AutoMigrate for the full legislative model. It is also
// used by the sqlite-backed tests, which is why it takes the handle
// instead of reading it off the service.
func Migrate(gormDB *gorm.DB) error {
  return gormDB.AutoMigrate(
    &types.Legislature{},
    &types.Initiative{},
    &types.Author{},
    &types.Phase{},
    &types.Attachment{},
    &types.Publication{},
    &types.Vote{},
    &types.Commission{},
    &types.CommissionDocument{},
    &types.Rapporteur{},
    &types.Opinion{},
    &types.OpinionRequest{},
    &types.Hearing{},
    &types.Audience{},
    &types.CommissionVote{},
    &types.FinalDraftSubmission{},
    &types.Forwarding{},
    &types.Debate{},
    &types.VideoLink{},
    &types.DeputyDebate{},
    &types.GovernmentMemberDebate{},
    &types.GuestDebate{},
    &types.ApprovedText{},
    &types.DeputyAppeal{},
    &types.PartyAppeal{},
    &types.RelatedInitiative{},
  )
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  if err := Migrate(s.db); err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
