package domain

import "time"

// Roles recognised by the lab platform. The set is fixed: role checks and
// token claims both assume no other value can ever be stored.
const (
	RoleAdmin        = "admin"
	RoleCashier      = "cashier"
	RoleTechnician   = "technician"
	RoleClinician    = "clinician"
	RoleReceptionist = "receptionist"
)

// Account models a staff member or system principal that can authenticate.
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	GivenName    string     `json:"given_name"`
	FamilyName   string     `json:"family_name"`
	Email        string     `json:"email,omitempty"`
	Specialty    string     `json:"specialty,omitempty"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	PasswordHash string     `json:"-"`
	LastAccess   *time.Time `json:"last_access,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RoleInfo describes one entry of the fixed role catalog.
type RoleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Roles returns the role catalog in presentation order.
func Roles() []RoleInfo {
	return []RoleInfo{
		{ID: RoleAdmin, Name: "Administrator", Description: "Full access to the system"},
		{ID: RoleCashier, Name: "Cashier", Description: "Billing and payments"},
		{ID: RoleTechnician, Name: "Technician", Description: "Results and lab equipment"},
		{ID: RoleClinician, Name: "Clinician", Description: "Patient history and results"},
		{ID: RoleReceptionist, Name: "Receptionist", Description: "Patient registration and orders"},
	}
}

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleTechnician, RoleClinician, RoleReceptionist:
		return true
	}
	return false
}
