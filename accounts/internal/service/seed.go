package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAccounts makes sure the two seeded accounts exist with confirmed
// emails. Idempotent: existing accounts are left untouched, so operator
// password changes survive restarts.
func SeedDefaultAccounts(storage AccountStorage, adminEmail, adminPass, userEmail, userPass string) error {
	if err := seedAccount(storage, adminEmail, adminPass, []string{domain.RoleAdmin, domain.RoleUser}); err != nil {
		return err
	}
	return seedAccount(storage, userEmail, userPass, []string{domain.RoleUser})
}

func seedAccount(storage AccountStorage, email, password string, roles []string) error {
	email = normalizeEmail(email)

	if _, err := storage.AccountByEmail(email); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account := domain.Account{
		Id:             uuid.NewString(),
		Login:          seedLogin(email),
		Email:          email,
		PassHash:       string(passHash),
		EmailConfirmed: true,
		SecurityStamp:  uuid.NewString(),
		Roles:          roles,
	}
	if _, err := storage.SaveAccount(account); err != nil {
		return err
	}

	logger.Log.Info("seeded default account", "login", account.Login, "roles", roles)
	return nil
}

// seedLogin derives a login name from the local part of the seeded email.
func seedLogin(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
