package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

func newTokenService(accessTTL, refreshTTL time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Secret:     "test-secret",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
}

func TestTokenService_IssueAndValidateAccess(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	raw, err := svc.IssueAccessToken("acc_42")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	identity, err := svc.Validate(raw)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if identity.AccountID != "acc_42" {
		t.Fatalf("expected account acc_42, got %s", identity.AccountID)
	}
	if identity.Kind != ports.TokenKindAccess {
		t.Fatalf("expected access kind, got %s", identity.Kind)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTokenService(-time.Second, time.Hour)

	raw, err := svc.IssueAccessToken("acc_42")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Validate(raw); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	raw, err := svc.IssueAccessToken("acc_42")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip a character inside the payload segment.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", raw)
	}
	payload := []byte(parts[1])
	if payload[5] == 'A' {
		payload[5] = 'B'
	} else {
		payload[5] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Validate(tampered); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	other := NewTokenService(TokenConfig{Secret: "other-secret"})
	raw, err := other.IssueAccessToken("acc_42")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	svc := newTokenService(time.Minute, time.Hour)
	if _, err := svc.Validate(raw); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestTokenService_RejectsUnsignedAlg(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "acc_42",
		"kind": ports.TokenKindAccess,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := svc.Validate(raw); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}

func TestTokenService_RefreshFlow(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	refresh, err := svc.IssueRefreshToken("acc_7")
	if err != nil {
		t.Fatalf("issue refresh failed: %v", err)
	}

	access, err := svc.Refresh(refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	identity, err := svc.Validate(access)
	if err != nil {
		t.Fatalf("validate refreshed token: %v", err)
	}
	if identity.AccountID != "acc_7" || identity.Kind != ports.TokenKindAccess {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestTokenService_RefreshRejectsAccessToken(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	access, err := svc.IssueAccessToken("acc_7")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Refresh(access); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid when refreshing with access token, got %v", err)
	}
}

func TestTokenService_KindsAreDistinct(t *testing.T) {
	svc := newTokenService(time.Minute, time.Hour)

	refresh, err := svc.IssueRefreshToken("acc_7")
	if err != nil {
		t.Fatalf("issue refresh failed: %v", err)
	}

	identity, err := svc.Validate(refresh)
	if err != nil {
		t.Fatalf("validate refresh failed: %v", err)
	}
	if identity.Kind != ports.TokenKindRefresh {
		t.Fatalf("expected refresh kind, got %s", identity.Kind)
	}
}
