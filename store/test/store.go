// Package test provides helpers for store integration tests. Tests run
// against a throwaway SQLite database in a temp directory; set
// EDITALIZA_TEST_DSN to point them at a PostgreSQL instance instead.
package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ansochagas/editaliza/internal/profile"
	"github.com/ansochagas/editaliza/internal/util"
	"github.com/ansochagas/editaliza/store"
	"github.com/ansochagas/editaliza/store/db"
)

// NewTestingStore creates a migrated store on a fresh database.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := getTestingProfile(t)
	driver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return st
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "editaliza_test.db"),
	}
	if dsn := os.Getenv("EDITALIZA_TEST_DSN"); dsn != "" {
		p.Driver = "postgres"
		p.DSN = dsn
	}
	return p
}

// createTestingPlan inserts a plan with a workable default setup: four
// hours Monday through Saturday at 50-minute sessions.
func createTestingPlan(ctx context.Context, ts *store.Store, ownerID int32) (*store.Plan, error) {
	return ts.CreatePlan(ctx, &store.Plan{
		UID:                    util.GenShortUID(),
		OwnerID:                ownerID,
		Name:                   fmt.Sprintf("plan-%d", ownerID),
		ExamDate:               "2025-07-02",
		StudyHours:             [7]float64{0, 4, 4, 4, 4, 4, 4},
		SessionDurationMinutes: 50,
		ReviewMode:             store.ReviewModeFull,
	})
}
