package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinilab/auth-service/internal/api/middleware"
	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password, clientIP string) (*ports.LoginResult, error)
	refreshFn        func(ctx context.Context, refreshToken string) (string, error)
	getProfileFn     func(ctx context.Context, accountID string) (*domain.Account, error)
	changePasswordFn func(ctx context.Context, accountID, oldPassword, newPassword string) error
	createFn         func(ctx context.Context, input ports.CreateAccountInput) (*ports.CreatedAccount, error)
	updateFn         func(ctx context.Context, accountID string, patch ports.AccountPatch) (*domain.Account, error)
	toggleFn         func(ctx context.Context, actorID, accountID string) (bool, error)
	resetFn          func(ctx context.Context, accountID string) (string, error)
	listFn           func(ctx context.Context) ([]*domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password, clientIP string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password, clientIP)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.getProfileFn(ctx, accountID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, accountID, oldPassword, newPassword)
}

func (s *stubAuthService) AdminCreateAccount(ctx context.Context, input ports.CreateAccountInput) (*ports.CreatedAccount, error) {
	return s.createFn(ctx, input)
}

func (s *stubAuthService) AdminUpdateAccount(ctx context.Context, accountID string, patch ports.AccountPatch) (*domain.Account, error) {
	return s.updateFn(ctx, accountID, patch)
}

func (s *stubAuthService) AdminToggleActive(ctx context.Context, actorID, accountID string) (bool, error) {
	return s.toggleFn(ctx, actorID, accountID)
}

func (s *stubAuthService) AdminResetPassword(ctx context.Context, accountID string) (string, error) {
	return s.resetFn(ctx, accountID)
}

func (s *stubAuthService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAuthService) Roles() []domain.RoleInfo {
	return domain.Roles()
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password, clientIP string) (*ports.LoginResult, error) {
			if username != "tech1" || password != "s3cret99" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.LoginResult{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				Account:      &domain.Account{ID: "acc_1", Username: "tech1", Role: domain.RoleTechnician},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"tech1","password":"s3cret99"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-token" || resp["refresh_token"] != "refresh-token" {
		t.Fatalf("tokens missing from response: %+v", resp)
	}
	account, ok := resp["account"].(map[string]any)
	if !ok {
		t.Fatalf("expected account in response")
	}
	if _, leaked := account["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	})

	for _, body := range []string{`{}`, `{"username":"tech1"}`, `{"password":"s3cret99"}`} {
		c, _ := newTestContext(t, http.MethodPost, "/auth/login", body)
		err := h.Login(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for body %s, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_BlankUsername(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called for a blank username")
			return nil, nil
		},
	})

	// Whitespace satisfies "required" but sanitizes to nothing; that is a
	// malformed request, not a credential failure.
	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"   ","password":"s3cret99"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace-only username, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"ghost","password":"whatever1"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (string, error) {
			if refreshToken != "the-refresh-token" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return "new-access", nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().Header.Set("Authorization", "Bearer the-refresh-token")
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["access_token"] != "new-access" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	if err := h.Refresh(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		getProfileFn: func(_ context.Context, accountID string) (*domain.Account, error) {
			if accountID != "acc_1" {
				t.Fatalf("unexpected account id: %s", accountID)
			}
			return &domain.Account{ID: "acc_1", Username: "tech1"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextAccountID, "acc_1")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_AccountGone(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		getProfileFn: func(context.Context, string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextAccountID, "acc_gone")
	if err := h.Me(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_ShortNewPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(context.Context, string, string, string) error {
			t.Fatalf("service must not be called on validation failure")
			return nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/change-password", `{"current_password":"oldpass99","new_password":"short77"}`)
	c.Set(middleware.ContextAccountID, "acc_1")
	err := h.ChangePassword(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 7-char password, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	called := false
	h := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(_ context.Context, accountID, oldPassword, newPassword string) error {
			called = true
			if accountID != "acc_1" || oldPassword != "oldpass99" || newPassword != "newpass8" {
				t.Fatalf("unexpected args: %s %s %s", accountID, oldPassword, newPassword)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/change-password", `{"current_password":"oldpass99","new_password":"newpass8"}`)
	c.Set(middleware.ContextAccountID, "acc_1")
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
