package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

// AdminHandler serves the account-administration routes. Every route is
// wired behind RequireRole(admin) in the router.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type createAccountRequest struct {
	Username   string `json:"username"    validate:"required,notblank,max=50"`
	GivenName  string `json:"given_name"  validate:"required,max=100"`
	FamilyName string `json:"family_name" validate:"required,max=100"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Role       string `json:"role"        validate:"required"`
	Specialty  string `json:"specialty"   validate:"omitempty,max=100"`
}

type createAccountResponse struct {
	Account           *domain.Account `json:"account"`
	TemporaryPassword string          `json:"temporary_password"`
	Notice            string          `json:"notice"`
}

type updateAccountRequest struct {
	GivenName  *string `json:"given_name,omitempty"`
	FamilyName *string `json:"family_name,omitempty"`
	Email      *string `json:"email,omitempty"       validate:"omitempty,email"`
	Role       *string `json:"role,omitempty"`
	Specialty  *string `json:"specialty,omitempty"`
}

type toggleActiveResponse struct {
	Active bool `json:"active"`
}

type resetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password"`
	Notice            string `json:"notice"`
}

type listAccountsResponse struct {
	Accounts []*domain.Account `json:"accounts"`
	Total    int               `json:"total"`
}

type rolesResponse struct {
	Roles []domain.RoleInfo `json:"roles"`
}

// The one-time password is disclosed in the response body, mirroring how
// the lab staff workflow hands it over; there is no out-of-band channel.
const temporaryPasswordNotice = "Deliver the temporary password to the user; it cannot be retrieved again."

// List returns all accounts, newest first.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAccountsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/accounts [get]
func (h *AdminHandler) List(c echo.Context) error {
	accounts, err := h.authService.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAccountsResponse{Accounts: accounts, Total: len(accounts)})
}

// Get returns a single account by id.
//
// @Summary      Get one account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /admin/accounts/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	account, err := h.authService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create provisions an account and returns its one-time temporary password.
//
// @Summary      Create an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  createAccountResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/accounts [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.authService.AdminCreateAccount(c.Request().Context(), ports.CreateAccountInput{
		Username:   req.Username,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Role:       req.Role,
		Specialty:  req.Specialty,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createAccountResponse{
		Account:           created.Account,
		TemporaryPassword: created.TemporaryPassword,
		Notice:            temporaryPasswordNotice,
	})
}

// Update applies a partial update to an account.
//
// @Summary      Update an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/accounts/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.AdminUpdateAccount(c.Request().Context(), c.Param("id"), ports.AccountPatch{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Role:       req.Role,
		Specialty:  req.Specialty,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}

// ToggleActive flips an account's active flag. Deactivation is the
// system's deletion equivalent; records are never hard-deleted.
//
// @Summary      Activate or deactivate an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  toggleActiveResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/accounts/{id}/toggle [post]
func (h *AdminHandler) ToggleActive(c echo.Context) error {
	actorID, err := CallerID(c)
	if err != nil {
		return err
	}

	active, err := h.authService.AdminToggleActive(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toggleActiveResponse{Active: active})
}

// ResetPassword issues a fresh one-time temporary password for an account.
//
// @Summary      Reset an account password
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  resetPasswordResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/accounts/{id}/reset-password [post]
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	temp, err := h.authService.AdminResetPassword(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resetPasswordResponse{
		TemporaryPassword: temp,
		Notice:            temporaryPasswordNotice,
	})
}

// Roles returns the fixed role catalog.
//
// @Summary      List available roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rolesResponse
// @Router       /admin/roles [get]
func (h *AdminHandler) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{Roles: h.authService.Roles()})
}
