package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSignature means the token's HMAC does not verify
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrMalformed means the token or its claims are unparsable
	ErrMalformed = errors.New("token malformed")
	// ErrExpired means the token verified but is past its expiry.
	// Verify still returns the claims so callers can tell "log in again"
	// apart from tampering.
	ErrExpired = errors.New("token expired")
)

// Claims is the identity carried by a bearer token. FamilyID is nil when
// the parent had not joined a family at issuance time; it reflects
// membership at issuance and must not be trusted as proof of current
// membership.
type Claims struct {
	ParentID int64
	FamilyID *uuid.UUID
	IssuedAt time.Time
}

// Codec issues and verifies signed bearer tokens over a fixed signing
// secret held in process-wide configuration.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec signing with secret; tokens expire after ttl
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type jwtClaims struct {
	FamilyID string `json:"family_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for a parent. familyID may be nil.
func (c *Codec) Issue(parentID int64, familyID *uuid.UUID) (string, error) {
	now := c.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(parentID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	if familyID != nil {
		claims.FamilyID = familyID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. It returns ErrInvalidSignature,
// ErrMalformed, or ErrExpired; for ErrExpired the claims are still
// returned alongside the error.
func (c *Codec) Verify(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	var jc jwtClaims
	_, err := parser.ParseWithClaims(raw, &jc, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			claims, convErr := jc.toClaims()
			if convErr != nil {
				return nil, ErrMalformed
			}
			return claims, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, err := jc.toClaims()
	if err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// toClaims converts the wire claims into the domain form
func (jc *jwtClaims) toClaims() (*Claims, error) {
	parentID, err := strconv.ParseInt(jc.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	claims := &Claims{ParentID: parentID}
	if jc.FamilyID != "" {
		familyID, err := uuid.Parse(jc.FamilyID)
		if err != nil {
			return nil, fmt.Errorf("invalid family_id claim: %w", err)
		}
		claims.FamilyID = &familyID
	}
	if jc.IssuedAt != nil {
		claims.IssuedAt = jc.IssuedAt.Time
	}
	return claims, nil
}
