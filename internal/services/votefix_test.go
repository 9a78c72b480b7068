package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/passosperdidos/parlamento-backend/internal/db"
	"github.com/passosperdidos/parlamento-backend/internal/ingest"
	"github.com/passosperdidos/parlamento-backend/internal/logger"
	"github.com/passosperdidos/parlamento-backend/internal/repos"
	"github.com/passosperdidos/parlamento-backend/internal/types"
)

func TestRefreshBreakdowns(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	details := "A Favor: <I>PS</I><BR>Contra: <I>CH</I>"
	stale := &types.Vote{ID: uuid.New(), Result: "Aprovado", Details: &details}
	noDetails := &types.Vote{ID: uuid.New(), Result: "Aprovado"}
	if err := gdb.Create([]*types.Vote{stale, noDetails}).Error; err != nil {
		t.Fatalf("seeding votes: %v", err)
	}

	log := logger.NewNop()
	svc := NewVoteFixService(repos.NewVoteRepo(gdb, log), log)

	result, err := svc.RefreshBreakdowns(context.Background(), 50)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Processed != 1 || result.Updated != 1 || result.Failed != 0 {
		t.Fatalf("result wrong: %+v", result)
	}

	var reloaded types.Vote
	if err := gdb.First(&reloaded, "id = ?", stale.ID).Error; err != nil {
		t.Fatalf("reloading: %v", err)
	}
	var bd ingest.Breakdown
	if err := json.Unmarshal(reloaded.Breakdown, &bd); err != nil {
		t.Fatalf("breakdown not json: %v", err)
	}
	if len(bd.AFavor) != 1 || bd.AFavor[0] != "PS" || len(bd.Contra) != 1 {
		t.Fatalf("breakdown wrong: %+v", bd)
	}

	// A second pass is a no-op.
	again, err := svc.RefreshBreakdowns(context.Background(), 50)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if again.Updated != 0 {
		t.Fatalf("second pass should not rewrite: %+v", again)
	}
}
