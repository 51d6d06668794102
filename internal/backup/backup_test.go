package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/utils"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(time.Minute)
	return now
}

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitstack.db")

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	db.MustExec(`CREATE TABLE habit_stacks (id TEXT PRIMARY KEY, goal TEXT)`)
	db.MustExec(`INSERT INTO habit_stacks (id, goal) VALUES ('s1', 'DAILY'), ('s2', 'NO_GOAL')`)
	return dbPath
}

func countStacks(t *testing.T, path string) int {
	t.Helper()
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM habit_stacks"); err != nil {
		t.Fatalf("failed to count stacks: %v", err)
	}
	return n
}

func newClock() *stepClock {
	return &stepClock{t: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, newClock())

	path, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := filepath.Join(filepath.Dir(dbPath), constants.BackupDirName, "habitstack-20250310-080000.db")
	if path != want {
		t.Errorf("backup path = %s, want %s", path, want)
	}
	if got := countStacks(t, path); got != 2 {
		t.Errorf("backup has %d stacks, want 2", got)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), newClock())
	if _, err := mgr.Create(context.Background()); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestCreate_SameTimestamp(t *testing.T) {
	dbPath := setupTestDB(t)
	fixed := utils.FixedClock{T: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	mgr := NewManager(dbPath, fixed)

	first, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct backup paths, got %s twice", first)
	}
	if filepath.Base(second) != "habitstack-20250310-080000-1.db" {
		t.Errorf("unexpected second backup name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, newClock())

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, newClock())

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, newClock())
	ctx := context.Background()

	backupPath, err := mgr.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	db.MustExec(`DELETE FROM habit_stacks`)
	db.Close()

	previous, err := mgr.Restore(ctx, backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countStacks(t, dbPath); got != 2 {
		t.Errorf("restored database has %d stacks, want 2", got)
	}
	if got := countStacks(t, previous); got != 0 {
		t.Errorf("pre-restore backup has %d stacks, want 0", got)
	}
}

func TestRestore_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, newClock())
	ctx := context.Background()

	if _, err := mgr.Restore(ctx, filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("this is not a database at all, not even close"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(ctx, garbage); err == nil {
		t.Error("expected error for corrupted backup")
	}
	if got := countStacks(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d stacks", got)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"habitstack-20250310-080000.db", true},
		{"habitstack-20250310-080000-3.db", true},
		{"habitstack-2025.db", false},
		{"backup-20250310-080000.db", false},
		{"habitstack-20250310-080000.txt", false},
	}

	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
