package ports

import (
	"context"
	"time"

	"github.com/clinilab/auth-service/internal/core/domain"
)

// AccountPatch carries the optional fields of an administrative update.
// Nil pointers mean "leave unchanged".
type AccountPatch struct {
	GivenName  *string
	FamilyName *string
	Email      *string
	Role       *string
	Specialty  *string
	Active     *bool
}

// AccountRepository defines the persistence boundary for accounts.
// Lookups return domain.ErrAccountNotFound when no record matches;
// Create returns domain.ErrAccountExists on a username collision.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id string, patch AccountPatch) (*domain.Account, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	TouchLastAccess(ctx context.Context, id string, at time.Time) error
}
