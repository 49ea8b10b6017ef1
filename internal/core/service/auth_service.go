package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/clinilab/auth-service/internal/api/metrics"
	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
	"github.com/clinilab/auth-service/pkg/password"
)

const (
	maxUsernameLen = 50
	minPasswordLen = 8
	maxPasswordLen = 128
)

// AuthService implements login, token refresh, credential lifecycle and
// administrative account management.
type AuthService struct {
	repo   ports.AccountRepository
	tokens ports.TokenService
	hasher *password.Hasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, tokens ports.TokenService, hasher *password.Hasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hasher: hasher, logger: logger}
}

// Login verifies a username/password pair and issues an access and a
// refresh token. Unknown usernames, inactive accounts and wrong passwords
// all surface the same ErrInvalidCredentials; the unknown/inactive paths
// burn an equivalent hash verification so timing does not differ either.
func (s *AuthService) Login(ctx context.Context, username, pass, clientIP string) (*ports.LoginResult, error) {
	username = normalizeUsername(username)
	if username == "" || pass == "" || utf8.RuneCountInString(username) > maxUsernameLen || utf8.RuneCountInString(pass) > maxPasswordLen {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if err != nil || !account.Active {
		s.hasher.DummyVerify()
		s.logger.Warn().Str("username", username).Str("client_ip", clientIP).Msg("login failed")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	start := time.Now()
	ok := s.hasher.Verify(pass, account.PasswordHash)
	metrics.PasswordVerifyDuration.Observe(time.Since(start).Seconds())
	if !ok {
		s.logger.Warn().Str("username", username).Str("client_ip", clientIP).Msg("login failed")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastAccess(ctx, account.ID, now); err != nil {
		// Login still succeeds; the timestamp is advisory.
		s.logger.Error().Err(err).Str("account_id", account.ID).Msg("failed to update last access")
	}
	account.LastAccess = &now

	access, err := s.tokens.IssueAccessToken(account.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenKindAccess).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenKindRefresh).Inc()
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.logger.Info().Str("username", username).Str("client_ip", clientIP).Msg("login succeeded")

	return &ports.LoginResult{AccessToken: access, RefreshToken: refresh, Account: account}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenKindAccess).Inc()
	return access, nil
}

func (s *AuthService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

// ChangePassword replaces the caller's hash after re-verifying the current
// password. Outstanding tokens stay valid until natural expiry.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	if n := utf8.RuneCountInString(newPassword); n < minPasswordLen || n > maxPasswordLen {
		return domain.ErrPasswordPolicy
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldPassword, account.PasswordHash) {
		s.logger.Warn().Str("account_id", accountID).Msg("password change rejected: wrong current password")
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPasswordHash(ctx, accountID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("username", account.Username).Msg("password changed")
	return nil
}

// AdminCreateAccount provisions a new account with a generated one-shot
// temporary password. The plaintext is returned to the admin in this call
// only; the store keeps nothing but the hash.
func (s *AuthService) AdminCreateAccount(ctx context.Context, input ports.CreateAccountInput) (*ports.CreatedAccount, error) {
	username := normalizeUsername(input.Username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	temp, err := s.hasher.TemporaryPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(temp)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		GivenName:    input.GivenName,
		FamilyName:   input.FamilyName,
		Email:        input.Email,
		Specialty:    input.Specialty,
		Role:         input.Role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("account created")

	return &ports.CreatedAccount{Account: created, TemporaryPassword: temp}, nil
}

func (s *AuthService) AdminUpdateAccount(ctx context.Context, accountID string, patch ports.AccountPatch) (*domain.Account, error) {
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.repo.Update(ctx, accountID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", updated.Username).Msg("account updated")
	return updated, nil
}

// AdminToggleActive flips the active flag and returns the new state.
// An admin cannot deactivate their own account.
func (s *AuthService) AdminToggleActive(ctx context.Context, actorID, accountID string) (bool, error) {
	if actorID == accountID {
		return false, domain.ErrSelfDeactivation
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}

	next := !account.Active
	if _, err := s.repo.Update(ctx, accountID, ports.AccountPatch{Active: &next}); err != nil {
		return false, err
	}

	s.logger.Info().Str("username", account.Username).Bool("active", next).Msg("account active state toggled")
	return next, nil
}

// AdminResetPassword overwrites the target's hash with one derived from a
// fresh temporary password, bypassing the old-password check.
func (s *AuthService) AdminResetPassword(ctx context.Context, accountID string) (string, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	temp, err := s.hasher.TemporaryPassword()
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.Hash(temp)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetPasswordHash(ctx, accountID, hash); err != nil {
		return "", err
	}

	s.logger.Info().Str("username", account.Username).Msg("password reset by admin")
	return temp, nil
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) Roles() []domain.RoleInfo {
	return domain.Roles()
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
