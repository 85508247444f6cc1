package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"kidic/internal/models"
)

func TestAddMedicalRecordNotifiesFamily(t *testing.T) {
	env := newTestEnv(t)
	_, parentID, childID, raw := setupFamilyWithChild(t, env, "member@example.com")

	record, err := env.recordService.AddMedicalRecord(raw, childID, "vaccination", "flu shot")
	if err != nil {
		t.Fatalf("AddMedicalRecord failed: %v", err)
	}
	if record.ChildID != childID {
		t.Errorf("record child = %d, want %d", record.ChildID, childID)
	}

	rows, err := env.notifications.ListForRecipient(parentID)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rows))
	}
	if rows[0].Type != models.NotificationMedical {
		t.Errorf("notification type = %v, want MEDICAL", rows[0].Type)
	}
	if !strings.Contains(rows[0].Content, "Alice") {
		t.Errorf("notification should name the child, got %q", rows[0].Content)
	}

	records, err := env.recordService.ListMedicalRecords(raw, childID)
	if err != nil {
		t.Fatalf("ListMedicalRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestAddGrowthRecordNotifiesFamily(t *testing.T) {
	env := newTestEnv(t)
	_, parentID, childID, raw := setupFamilyWithChild(t, env, "member@example.com")

	if _, err := env.recordService.AddGrowthRecord(raw, childID, 98.5, 15.2, time.Now()); err != nil {
		t.Fatalf("AddGrowthRecord failed: %v", err)
	}

	rows, _ := env.notifications.ListForRecipient(parentID)
	if len(rows) != 1 || rows[0].Type != models.NotificationGrowth {
		t.Errorf("expected one GROWTH notification, got %+v", rows)
	}
}

func TestAddMealNotifiesFamily(t *testing.T) {
	env := newTestEnv(t)
	_, parentID, childID, raw := setupFamilyWithChild(t, env, "member@example.com")

	if _, err := env.recordService.AddMeal(raw, childID, "lunch", "pasta", "12:30"); err != nil {
		t.Fatalf("AddMeal failed: %v", err)
	}

	rows, _ := env.notifications.ListForRecipient(parentID)
	if len(rows) != 1 || rows[0].Type != models.NotificationMeal {
		t.Errorf("expected one MEAL notification, got %+v", rows)
	}
}

func TestRecordAccessDeniedForOutsider(t *testing.T) {
	env := newTestEnv(t)
	_, _, childID, _ := setupFamilyWithChild(t, env, "member@example.com")
	_, _, _, outsiderRaw := setupFamilyWithChild(t, env, "outsider@example.com")

	if _, err := env.recordService.AddMedicalRecord(outsiderRaw, childID, "checkup", "routine"); !errors.Is(err, ErrDenied) {
		t.Errorf("outsider AddMedicalRecord = %v, want ErrDenied", err)
	}
	if _, err := env.recordService.ListMeals(outsiderRaw, childID); !errors.Is(err, ErrDenied) {
		t.Errorf("outsider ListMeals = %v, want ErrDenied", err)
	}
}
