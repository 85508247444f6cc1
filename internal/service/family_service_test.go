package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAddParent(t *testing.T) {
	env := newTestEnv(t)

	family, err := env.familyService.CreateFamily()
	if err != nil {
		t.Fatalf("Failed to create family: %v", err)
	}
	parentID := env.createParent(t, "parent@example.com")

	if err := env.familyService.AddParent(family.ID, parentID); err != nil {
		t.Fatalf("First AddParent failed: %v", err)
	}

	err = env.familyService.AddParent(family.ID, parentID)
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("Second AddParent = %v, want ErrAlreadyMember", err)
	}

	parents, err := env.familyService.GetFamilyParents(family.ID)
	if err != nil {
		t.Fatalf("GetFamilyParents failed: %v", err)
	}
	if len(parents) != 1 {
		t.Errorf("expected 1 member, got %d", len(parents))
	}
}

func TestAddParentMissingFamily(t *testing.T) {
	env := newTestEnv(t)
	parentID := env.createParent(t, "parent@example.com")

	err := env.familyService.AddParent(uuid.New(), parentID)
	if !errors.Is(err, ErrFamilyNotFound) {
		t.Errorf("AddParent to missing family = %v, want ErrFamilyNotFound", err)
	}
}

func TestAddParentConcurrent(t *testing.T) {
	env := newTestEnv(t)

	family, err := env.familyService.CreateFamily()
	if err != nil {
		t.Fatalf("Failed to create family: %v", err)
	}
	parentID := env.createParent(t, "parent@example.com")

	const attempts = 2
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = env.familyService.AddParent(family.ID, parentID)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyMember):
			conflicts++
		default:
			t.Fatalf("unexpected AddParent error: %v", err)
		}
	}
	if successes != 1 || conflicts != attempts-1 {
		t.Errorf("expected exactly 1 success and %d conflicts, got %d and %d",
			attempts-1, successes, conflicts)
	}
}

func TestParentMovesBetweenFamilies(t *testing.T) {
	env := newTestEnv(t)

	first, _ := env.familyService.CreateFamily()
	second, _ := env.familyService.CreateFamily()
	parentID := env.createParent(t, "mover@example.com")

	if err := env.familyService.AddParent(first.ID, parentID); err != nil {
		t.Fatalf("AddParent to first family failed: %v", err)
	}
	if err := env.familyService.AddParent(second.ID, parentID); err != nil {
		t.Fatalf("AddParent to second family failed: %v", err)
	}

	current, err := env.familyService.CurrentFamilyOf(parentID)
	if err != nil {
		t.Fatalf("CurrentFamilyOf failed: %v", err)
	}
	if current == nil || *current != second.ID {
		t.Errorf("expected parent to be in second family, got %v", current)
	}

	firstParents, _ := env.familyService.GetFamilyParents(first.ID)
	if len(firstParents) != 0 {
		t.Errorf("expected first family to be empty after move, got %d members", len(firstParents))
	}
}

func TestRemoveChildIdempotent(t *testing.T) {
	env := newTestEnv(t)

	family, _ := env.familyService.CreateFamily()
	child, err := env.childRepo.CreateChild(family.ID, "Alice", "FEMALE", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), "")
	if err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}

	if err := env.familyService.RemoveChild(family.ID, child.ID); err != nil {
		t.Fatalf("First RemoveChild failed: %v", err)
	}
	if err := env.familyService.RemoveChild(family.ID, child.ID); err != nil {
		t.Errorf("Second RemoveChild should be a no-op, got %v", err)
	}

	got, err := env.childRepo.GetChildByID(child.ID)
	if err != nil {
		t.Fatalf("GetChildByID failed: %v", err)
	}
	if got != nil {
		t.Error("expected child to be gone")
	}
}

func TestFamilyOverview(t *testing.T) {
	env := newTestEnv(t)

	family, _ := env.familyService.CreateFamily()
	parentID := env.createParent(t, "parent@example.com")
	if err := env.familyService.AddParent(family.ID, parentID); err != nil {
		t.Fatalf("AddParent failed: %v", err)
	}
	if _, err := env.childRepo.CreateChild(family.ID, "Bob", "MALE", time.Date(2019, 1, 15, 0, 0, 0, 0, time.UTC), ""); err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	overview, err := env.familyService.FamilyOverview(family.ID)
	if err != nil {
		t.Fatalf("FamilyOverview failed: %v", err)
	}
	if overview.Family.ID != family.ID {
		t.Errorf("overview family = %v, want %v", overview.Family.ID, family.ID)
	}
	if len(overview.Parents) != 1 || len(overview.Children) != 1 {
		t.Errorf("expected 1 parent and 1 child, got %d and %d",
			len(overview.Parents), len(overview.Children))
	}
}
