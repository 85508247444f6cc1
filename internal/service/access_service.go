package service

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"kidic/internal/models"
	"kidic/internal/repository"
	"kidic/internal/token"
)

// ErrDenied is the single error returned for every authorization
// failure. Callers never learn whether the resource exists, who owns
// it, or why the token was rejected.
var ErrDenied = errors.New("not authorized")

// AccessGuard decides whether a bearer token may touch a child or
// family. Membership is always re-derived from the store; the token's
// family claim alone is never sufficient.
type AccessGuard struct {
	codec      *token.Codec
	parentRepo *repository.ParentRepository
	childRepo  *repository.ChildRepository
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(codec *token.Codec, parentRepo *repository.ParentRepository, childRepo *repository.ChildRepository) *AccessGuard {
	return &AccessGuard{
		codec:      codec,
		parentRepo: parentRepo,
		childRepo:  childRepo,
	}
}

// deny logs the real reason and returns the uniform denial
func deny(reason string, args ...interface{}) error {
	log.Printf("access denied: "+reason, args...)
	return ErrDenied
}

// AuthorizeChildAccess checks that the token's bearer currently belongs
// to the child's owning family, returning the child on success
func (g *AccessGuard) AuthorizeChildAccess(rawToken string, childID int64) (*models.Child, error) {
	claims, err := g.codec.Verify(rawToken)
	if err != nil {
		return nil, deny("token rejected: %v", err)
	}
	if claims.FamilyID == nil {
		return nil, deny("parent %d has no family claim", claims.ParentID)
	}

	child, err := g.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, deny("child %d does not exist", childID)
	}

	// Cheap reject before touching the parents table
	if child.FamilyID != *claims.FamilyID {
		return nil, deny("child %d is not in family %s", childID, claims.FamilyID)
	}

	current, err := g.currentFamily(claims.ParentID)
	if err != nil {
		return nil, err
	}
	if current == nil || *current != child.FamilyID {
		return nil, deny("parent %d is no longer a member of family %s", claims.ParentID, child.FamilyID)
	}

	return child, nil
}

// AuthorizeFamilyAccess checks that the token's bearer currently
// belongs to the given family
func (g *AccessGuard) AuthorizeFamilyAccess(rawToken string, familyID uuid.UUID) (*token.Claims, error) {
	claims, err := g.codec.Verify(rawToken)
	if err != nil {
		return nil, deny("token rejected: %v", err)
	}
	if claims.FamilyID == nil || *claims.FamilyID != familyID {
		return nil, deny("parent %d token does not claim family %s", claims.ParentID, familyID)
	}

	current, err := g.currentFamily(claims.ParentID)
	if err != nil {
		return nil, err
	}
	if current == nil || *current != familyID {
		return nil, deny("parent %d is no longer a member of family %s", claims.ParentID, familyID)
	}

	return claims, nil
}

// CurrentFamily resolves the bearer's identity and their store-derived
// family membership
func (g *AccessGuard) CurrentFamily(rawToken string) (int64, uuid.UUID, error) {
	claims, err := g.codec.Verify(rawToken)
	if err != nil {
		return 0, uuid.Nil, deny("token rejected: %v", err)
	}

	current, err := g.currentFamily(claims.ParentID)
	if err != nil {
		return 0, uuid.Nil, err
	}
	if current == nil {
		return 0, uuid.Nil, deny("parent %d has no family", claims.ParentID)
	}

	return claims.ParentID, *current, nil
}

func (g *AccessGuard) currentFamily(parentID int64) (*uuid.UUID, error) {
	parent, err := g.parentRepo.GetParentByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, deny("parent %d does not exist", parentID)
	}
	return parent.CurrentFamily(), nil
}
