package domain

import "time"

type (
	AccountId = string
	Email     = string
	Login     = string
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is the system-of-record shape of a user account. PassHash is a
// bcrypt hash and is never serialized. SecurityStamp is rotated whenever a
// credential (password, login, email) changes.
type Account struct {
	Id             AccountId
	Login          Login
	Email          Email
	PassHash       string
	EmailConfirmed bool
	SecurityStamp  string
	Roles          []string
	CreatedAt      time.Time
}

func (a *Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a *Account) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// ConfirmationToken binds a single-use email-ownership proof to one account.
// Only the SHA-256 hash of the token value is ever stored.
type ConfirmationToken struct {
	AccountId AccountId
	TokenHash string
	CreatedAt time.Time
}
