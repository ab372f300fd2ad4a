// Package service implements the account lifecycle flow: registration,
// login and token issuance, email confirmation, credential mutation and the
// notification side-effects of each.
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
)

type AccountService interface {
	Register(req api.RegisterRequest, role string) (api.MessageResponse, error)
	Login(req api.LoginRequest) (api.LoginResponse, error)
	Delete(req api.DeleteAccountRequest) (api.MessageResponse, error)
	ResetPassword(req api.ResetPasswordRequest) (api.MessageResponse, error)
	Update(req api.UpdateAccountRequest) (api.MessageResponse, error)
	AdminResetPassword(req api.AdminResetPasswordRequest) (api.MessageResponse, error)
	AdminUpdate(req api.AdminUpdateAccountRequest) (api.MessageResponse, error)
	ConfirmEmail(accountId domain.AccountId, token string) (api.MessageResponse, error)
	ResendConfirmation(req api.ResendConfirmationRequest) (api.MessageResponse, error)
}

// AccountStorage is the credential store collaborator. It is the sole arbiter
// of login/email uniqueness: duplicate inserts and updates must surface as
// conflict errors regardless of any read-before-write checks done here.
type AccountStorage interface {
	SaveAccount(account domain.Account) (domain.AccountId, error)
	AccountByEmail(email domain.Email) (domain.Account, error)
	AccountByLogin(login domain.Login) (domain.Account, error)
	AccountById(id domain.AccountId) (domain.Account, error)
	UpdatePassword(id domain.AccountId, passHash, securityStamp string) error
	UpdateLogin(id domain.AccountId, login domain.Login, securityStamp string) error
	// UpdateEmail also resets the email-confirmed flag for the new address.
	UpdateEmail(id domain.AccountId, email domain.Email, securityStamp string) error
	// UpdateIdentity changes login and email together in one transaction so
	// a conflict on either leaves neither committed. Resets the confirmed
	// flag like UpdateEmail.
	UpdateIdentity(id domain.AccountId, login domain.Login, email domain.Email, securityStamp string) error
	ConfirmEmail(id domain.AccountId) error
	DeleteAccount(id domain.AccountId) error
	SaveConfirmationToken(token domain.ConfirmationToken) error
	// ConsumeConfirmationToken validates and atomically invalidates a token.
	ConsumeConfirmationToken(id domain.AccountId, tokenHash string) error
}

// Notifier attempts delivery of one message and reports the outcome. A
// failure never aborts the operation that triggered it.
type Notifier interface {
	Send(msg domain.EmailMessage) error
}

type Jwt interface {
	NewToken(account domain.Account) (string, time.Time, error)
}

type Accounts struct {
	storage  AccountStorage
	notifier Notifier
	jwt      Jwt

	baseURL      string
	defaultAdmin domain.Email
	defaultUser  domain.Email
}

func NewAccounts(storage AccountStorage, notifier Notifier, jwt Jwt, baseURL string, defaultAdmin, defaultUser domain.Email) *Accounts {
	return &Accounts{
		storage:      storage,
		notifier:     notifier,
		jwt:          jwt,
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultAdmin: strings.ToLower(defaultAdmin),
		defaultUser:  strings.ToLower(defaultUser),
	}
}

// isDefaultAccount reports whether email belongs to one of the two seeded
// accounts, which are exempt from real mail delivery.
func (a *Accounts) isDefaultAccount(email domain.Email) bool {
	email = strings.ToLower(email)
	return email == a.defaultAdmin || email == a.defaultUser
}

// newConfirmationToken returns the opaque token value and the hash under
// which it is persisted. Only the hash ever reaches storage.
func newConfirmationToken() (raw string, hash string) {
	raw = uuid.NewString() + uuid.NewString()
	return raw, hashToken(raw)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// confirmationLink embeds a token into the URL the recipient follows to
// prove ownership of the address.
func (a *Accounts) confirmationLink(id domain.AccountId, token string) string {
	return fmt.Sprintf("%s/account/confirmemail?userId=%s&token=%s", a.baseURL, url.QueryEscape(id), url.QueryEscape(token))
}

func normalizeEmail(email domain.Email) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeLogin(login domain.Login) domain.Login {
	return strings.ToLower(strings.TrimSpace(login))
}
