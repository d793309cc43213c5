package domain

// Role strings are the values persisted in the account table and returned by
// the CONNEXION action. Existing data directories use the French labels, so
// the constants carry them verbatim.
const (
	RoleAdmin    = "administrateur"
	RoleStandard = "utilisateur"
)

// ValidRole reports whether role is one of the two recognised account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStandard
}

// Account models a registered user of the directory service. PasswordDigest
// is a fixed-length hex digest computed by the client; the server never sees
// the clear-text password.
type Account struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	PasswordDigest string `json:"-"`
}

// AccountStats is one row of the administrator dashboard. ReadableByCount
// counts the permission rows whose grantee is this account, i.e. the number
// of other directories this account may read.
type AccountStats struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	ContactCount int    `json:"contact_count"`
	ReadableBy   int    `json:"readable_by_count"`
}
