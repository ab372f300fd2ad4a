package service

import (
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/logger"
	"github.com/shoply-dev/shoply/shared/validation"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials is the uniform unauthorized outcome: a missing
// account and a wrong password are indistinguishable to the caller, so
// account existence can not be probed through this endpoint.
func errInvalidCredentials() error {
	return errors.NewUnauthorized("Invalid credentials")
}

// resolve looks an account up by a field that may carry a login name or an
// email address. Email-shaped identifiers are tried as emails first and fall
// back to a login lookup, since login names may legally contain '@'.
func (a *Accounts) resolve(identifier string) (domain.Account, error) {
	if validation.LooksLikeEmail(identifier) {
		account, err := a.storage.AccountByEmail(normalizeEmail(identifier))
		if err == nil {
			return account, nil
		}
		if !errors.IsNotFound(err) {
			return domain.Account{}, err
		}
	}
	return a.storage.AccountByLogin(normalizeLogin(identifier))
}

// authenticate resolves the account and verifies the supplied password
// against the stored hash. Both failure modes collapse into the uniform
// unauthorized outcome.
func (a *Accounts) authenticate(identifier, password string) (domain.Account, error) {
	account, err := a.resolve(identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Account{}, errInvalidCredentials()
		}
		return domain.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(password)); err != nil {
		logger.Log.Debug("password verification failed", "account_id", account.Id)
		return domain.Account{}, errInvalidCredentials()
	}

	return account, nil
}

// authenticateAdmin additionally requires the admin role. An authenticated
// non-admin gets the same unauthorized outcome as bad credentials.
func (a *Accounts) authenticateAdmin(identifier, password string) (domain.Account, error) {
	account, err := a.authenticate(identifier, password)
	if err != nil {
		return domain.Account{}, err
	}
	if !account.IsAdmin() {
		return domain.Account{}, errors.NewUnauthorized("Admin role required")
	}
	return account, nil
}
