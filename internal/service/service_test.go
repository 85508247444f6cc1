package service

import (
	"path/filepath"
	"testing"
	"time"

	"kidic/internal/database"
	"kidic/internal/repository"
	"kidic/internal/token"
)

// testEnv wires the full service stack against a throwaway SQLite
// database
type testEnv struct {
	db               *database.DB
	parentRepo       *repository.ParentRepository
	familyRepo       *repository.FamilyRepository
	childRepo        *repository.ChildRepository
	notificationRepo *repository.NotificationRepository
	recordRepo       *repository.RecordRepository

	codec         *token.Codec
	familyService *FamilyService
	notifications *NotificationService
	authService   *AuthService
	guard         *AccessGuard
	childService  *ChildService
	recordService *RecordService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	env := &testEnv{
		db:               db,
		parentRepo:       repository.NewParentRepository(db),
		familyRepo:       repository.NewFamilyRepository(db),
		childRepo:        repository.NewChildRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		recordRepo:       repository.NewRecordRepository(db),
		codec:            token.NewCodec("test-secret", time.Hour),
	}

	env.familyService = NewFamilyService(env.familyRepo, env.parentRepo, env.childRepo, nil)
	env.notifications = NewNotificationService(env.notificationRepo, env.parentRepo, env.familyRepo, nil)
	env.authService = NewAuthService(env.parentRepo, env.familyService, env.notifications, env.codec)
	env.guard = NewAccessGuard(env.codec, env.parentRepo, env.childRepo)
	env.childService = NewChildService(env.guard, env.childRepo, env.familyService)
	env.recordService = NewRecordService(env.guard, env.recordRepo, env.notifications)

	return env
}

// createParent inserts a parent directly, bypassing validation
func (env *testEnv) createParent(t *testing.T, email string) int64 {
	t.Helper()
	parent, err := env.parentRepo.CreateParent(email, "hash", "Test Parent", "", "FEMALE")
	if err != nil {
		t.Fatalf("Failed to create parent: %v", err)
	}
	return parent.ID
}
