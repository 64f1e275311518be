package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medix-app/medix-backend/internal/model"
)

// TokenTTL is the fixed lifetime of an access token. Tokens are
// self-contained and are never revoked before they expire.
const TokenTTL = time.Hour

// Claims is the payload embedded in every access token.
type Claims struct {
	AccountID uint64     `json:"uid"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens. The signing
// key is injected at construction; the clock is injectable so expiry
// can be tested on both sides of the boundary.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, now: time.Now}
}

// WithClock replaces the service's time source.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token carrying the account id and role, expiring
// TokenTTL after the current time.
func (s *TokenService) Issue(accountID uint64, role model.Role) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})
	return t.SignedString(s.secret)
}

// Verify validates the signature and expiration of raw and returns the
// embedded claims. It returns ErrTokenMissing for an empty token,
// ErrTokenExpired when the expiration has passed, and ErrTokenInvalid
// for every other failure. Claims are trusted as issued; the account
// is not re-read from storage.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !t.Valid || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
