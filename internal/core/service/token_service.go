package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

const tokenIssuer = "clinilab-auth"

// TokenConfig holds the signing material and lifetimes injected at
// construction. There is no ambient/global token state.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues and validates HS256-signed, self-contained tokens.
// Tokens carry the account id as subject and a kind discriminator; nothing
// is persisted, so validation never touches a store and revocation before
// natural expiry is out of scope.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type tokenClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(accountID string) (string, error) {
	return s.sign(accountID, ports.TokenKindAccess, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(accountID string) (string, error) {
	return s.sign(accountID, ports.TokenKindRefresh, s.refreshTTL)
}

func (s *TokenService) sign(accountID, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return raw, nil
}

// Validate checks signature and expiry and returns the embedded identity.
// Any tampering with payload or expiry fails the signature check.
func (s *TokenService) Validate(raw string) (*ports.TokenIdentity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Kind != ports.TokenKindAccess && claims.Kind != ports.TokenKindRefresh {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenIdentity{AccountID: claims.Subject, Kind: claims.Kind}, nil
}

// Refresh mints a new access token from a valid refresh token. An access
// token presented here fails closed.
func (s *TokenService) Refresh(raw string) (string, error) {
	identity, err := s.Validate(raw)
	if err != nil {
		return "", err
	}
	if identity.Kind != ports.TokenKindRefresh {
		return "", domain.ErrTokenInvalid
	}
	return s.IssueAccessToken(identity.AccountID)
}
