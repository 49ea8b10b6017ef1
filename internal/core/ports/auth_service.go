package ports

import (
	"context"

	"github.com/clinilab/auth-service/internal/core/domain"
)

// LoginResult bundles what a successful login hands back to the client.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Account      *domain.Account
}

// CreateAccountInput carries the fields of an administrative account creation.
type CreateAccountInput struct {
	Username   string
	GivenName  string
	FamilyName string
	Email      string
	Role       string
	Specialty  string
}

// CreatedAccount pairs the stored profile with the one-time temporary
// password. The plaintext is returned exactly once and never persisted.
type CreatedAccount struct {
	Account           *domain.Account
	TemporaryPassword string
}

// AuthService orchestrates credential verification, token issuance and
// account administration.
type AuthService interface {
	Login(ctx context.Context, username, password, clientIP string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, accountID string) (*domain.Account, error)
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error

	AdminCreateAccount(ctx context.Context, input CreateAccountInput) (*CreatedAccount, error)
	AdminUpdateAccount(ctx context.Context, accountID string, patch AccountPatch) (*domain.Account, error)
	AdminToggleActive(ctx context.Context, actorID, accountID string) (bool, error)
	AdminResetPassword(ctx context.Context, accountID string) (string, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	Roles() []domain.RoleInfo
}
