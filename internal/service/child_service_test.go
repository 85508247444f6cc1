package service

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAndListChildren(t *testing.T) {
	env := newTestEnv(t)
	familyID, _, _, raw := setupFamilyWithChild(t, env, "member@example.com")

	child, err := env.childService.CreateChild(raw, "Charlie", "MALE", time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), "peanut allergy")
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	if child.FamilyID != familyID {
		t.Errorf("child family = %v, want %v", child.FamilyID, familyID)
	}

	children, err := env.childService.ListChildren(raw)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 2 {
		t.Errorf("expected 2 children, got %d", len(children))
	}
}

func TestUpdateChildKeepsFamily(t *testing.T) {
	env := newTestEnv(t)
	familyID, _, childID, raw := setupFamilyWithChild(t, env, "member@example.com")

	updated, err := env.childService.UpdateChild(raw, childID, "Alice Renamed", time.Date(2020, 5, 2, 0, 0, 0, 0, time.UTC), "updated notes")
	if err != nil {
		t.Fatalf("UpdateChild failed: %v", err)
	}
	if updated.Name != "Alice Renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice Renamed")
	}
	if updated.FamilyID != familyID {
		t.Errorf("update must not move the child, family = %v", updated.FamilyID)
	}
}

func TestDeleteChild(t *testing.T) {
	env := newTestEnv(t)
	_, _, childID, raw := setupFamilyWithChild(t, env, "member@example.com")

	if err := env.childService.DeleteChild(raw, childID); err != nil {
		t.Fatalf("DeleteChild failed: %v", err)
	}

	if _, err := env.childService.GetChild(raw, childID); !errors.Is(err, ErrDenied) {
		t.Errorf("GetChild after delete = %v, want ErrDenied", err)
	}
}

func TestChildOperationsDeniedForOutsider(t *testing.T) {
	env := newTestEnv(t)
	_, _, childID, _ := setupFamilyWithChild(t, env, "member@example.com")
	_, _, _, outsiderRaw := setupFamilyWithChild(t, env, "outsider@example.com")

	if _, err := env.childService.GetChild(outsiderRaw, childID); !errors.Is(err, ErrDenied) {
		t.Errorf("outsider GetChild = %v, want ErrDenied", err)
	}
	if err := env.childService.DeleteChild(outsiderRaw, childID); !errors.Is(err, ErrDenied) {
		t.Errorf("outsider DeleteChild = %v, want ErrDenied", err)
	}
}
