package ports

// Token kinds carried in the signed claims. A refresh token can only mint
// new access tokens; it never authorizes a business call directly.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenIdentity is the result of validating a signed token.
type TokenIdentity struct {
	AccountID string
	Kind      string
}

// TokenService issues and validates self-contained signed tokens.
// Validation is pure computation: no store lookup, no revocation list.
type TokenService interface {
	IssueAccessToken(accountID string) (string, error)
	IssueRefreshToken(accountID string) (string, error)
	Validate(raw string) (*TokenIdentity, error)
	Refresh(raw string) (string, error)
}
