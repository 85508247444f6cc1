package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	familyID := uuid.New()

	tests := []struct {
		name     string
		parentID int64
		familyID *uuid.UUID
	}{
		{
			name:     "with family claim",
			parentID: 42,
			familyID: &familyID,
		},
		{
			name:     "without family claim",
			parentID: 7,
			familyID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := codec.Issue(tt.parentID, tt.familyID)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.ParentID != tt.parentID {
				t.Errorf("ParentID = %d, want %d", claims.ParentID, tt.parentID)
			}
			if tt.familyID == nil {
				if claims.FamilyID != nil {
					t.Errorf("FamilyID = %v, want nil", claims.FamilyID)
				}
			} else {
				if claims.FamilyID == nil || *claims.FamilyID != *tt.familyID {
					t.Errorf("FamilyID = %v, want %v", claims.FamilyID, tt.familyID)
				}
			}
		})
	}
}

func TestVerifyExpiredReturnsClaims(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	familyID := uuid.New()

	issued := time.Now().Add(-2 * time.Hour)
	codec.now = func() time.Time { return issued }
	raw, err := codec.Issue(99, &familyID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Back to real time: the token is now an hour past expiry
	codec.now = time.Now
	claims, err := codec.Verify(raw)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify() error = %v, want ErrExpired", err)
	}
	if claims == nil {
		t.Fatal("Verify() returned nil claims for expired token")
	}
	if claims.ParentID != 99 {
		t.Errorf("ParentID = %d, want 99", claims.ParentID)
	}
	if claims.FamilyID == nil || *claims.FamilyID != familyID {
		t.Errorf("FamilyID = %v, want %v", claims.FamilyID, familyID)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	other := NewCodec("different-secret", time.Hour)

	raw, err := other.Issue(1, nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Verify(raw); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "garbage", raw: "not-a-token"},
		{name: "truncated", raw: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.raw); !errors.Is(err, ErrMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrMalformed", tt.raw, err)
			}
		})
	}
}
