package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account with the given role, stores a confirmation
// token and dispatches the confirmation link. Duplicate checks run email
// first so the email-conflict message wins when both values collide; the
// store's unique constraints remain the real arbiter for races.
func (a *Accounts) Register(req api.RegisterRequest, role string) (api.MessageResponse, error) {
	if err := validateRegistration(req); err != nil {
		return api.MessageResponse{}, err
	}

	email := normalizeEmail(req.Email)
	login := normalizeLogin(req.Username)

	if _, err := a.storage.AccountByEmail(email); err == nil {
		return api.MessageResponse{}, errors.NewBadRequest("Email is already registered")
	} else if !errors.IsNotFound(err) {
		return api.MessageResponse{}, err
	}
	if _, err := a.storage.AccountByLogin(login); err == nil {
		return api.MessageResponse{}, errors.NewBadRequest("Username is already taken")
	} else if !errors.IsNotFound(err) {
		return api.MessageResponse{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return api.MessageResponse{}, err
	}

	account := domain.Account{
		Id:            uuid.NewString(),
		Login:         login,
		Email:         email,
		PassHash:      string(passHash),
		SecurityStamp: uuid.NewString(),
		Roles:         []string{role},
	}
	id, err := a.storage.SaveAccount(account)
	if err != nil {
		return api.MessageResponse{}, err
	}

	return a.dispatchConfirmation(id, email, "Account created.")
}

// dispatchConfirmation stores a fresh token and delivers the confirmation
// link — or returns it in-band for the seeded default accounts. Notifier
// failure degrades the message, it never undoes the committed state.
func (a *Accounts) dispatchConfirmation(id domain.AccountId, email domain.Email, prefix string) (api.MessageResponse, error) {
	token, tokenHash := newConfirmationToken()
	if err := a.storage.SaveConfirmationToken(domain.ConfirmationToken{AccountId: id, TokenHash: tokenHash}); err != nil {
		return api.MessageResponse{}, err
	}

	link := a.confirmationLink(id, token)

	if a.isDefaultAccount(email) {
		return api.MessageResponse{
			Message:          prefix + " Default account: confirm via the returned link.",
			ConfirmationLink: link,
		}, nil
	}

	msg := domain.EmailMessage{
		Recipient: email,
		Subject:   "Please confirm your email address",
		HTMLBody:  fmt.Sprintf(`<p>Hello,</p><p>Please confirm your email address by following <a href="%s">this link</a>.</p><p>If you did not request this, ignore this email.</p>`, link),
		TextBody:  fmt.Sprintf("Please confirm your email address: %s", link),
	}
	if err := a.notifier.Send(msg); err != nil {
		logger.Log.Error("failed to send confirmation email", "account_id", id, "error", err)
		return api.MessageResponse{Message: prefix + " The confirmation email could not be sent; request a new one via the resend endpoint."}, nil
	}

	return api.MessageResponse{Message: prefix + " Check your inbox for the confirmation link."}, nil
}

// Login authenticates and issues a bearer token. Valid credentials against
// an unconfirmed email are a distinct outcome from bad credentials.
func (a *Accounts) Login(req api.LoginRequest) (api.LoginResponse, error) {
	if err := validateLogin(req); err != nil {
		return api.LoginResponse{}, err
	}

	account, err := a.authenticate(req.Username, req.Password)
	if err != nil {
		return api.LoginResponse{}, err
	}

	if !account.EmailConfirmed {
		return api.LoginResponse{}, errors.NewConflict("Email is not confirmed. Check your inbox or request a new confirmation email.")
	}

	token, expiresAt, err := a.jwt.NewToken(account)
	if err != nil {
		// a per-request signing failure downgrades to unauthorized, never a raw fault
		logger.Log.Error("failed to issue token", "account_id", account.Id, "error", err)
		return api.LoginResponse{}, errInvalidCredentials()
	}

	return api.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Username:    account.Login,
		Email:       account.Email,
	}, nil
}

// Delete removes the caller's account. An unset confirmation flag is a
// successful cancellation, not an error, and touches nothing.
func (a *Accounts) Delete(req api.DeleteAccountRequest) (api.MessageResponse, error) {
	if !req.IsConfirmed {
		return api.MessageResponse{Message: "Deletion cancelled"}, nil
	}

	account, err := a.authenticate(req.Username, req.Password)
	if err != nil {
		return api.MessageResponse{}, err
	}

	// The two seeded accounts must always exist.
	if a.isDefaultAccount(account.Email) {
		return api.MessageResponse{}, errors.NewBadRequest("Default accounts can not be deleted")
	}

	if err := a.storage.DeleteAccount(account.Id); err != nil {
		return api.MessageResponse{}, err
	}

	return api.MessageResponse{Message: "Account deleted"}, nil
}

// ResetPassword changes the caller's own password and notifies the account
// email afterwards.
func (a *Accounts) ResetPassword(req api.ResetPasswordRequest) (api.MessageResponse, error) {
	if err := validateResetPassword(req); err != nil {
		return api.MessageResponse{}, err
	}

	account, err := a.authenticate(req.Username, req.Password)
	if err != nil {
		return api.MessageResponse{}, err
	}

	return a.applyPasswordChange(account, req.NewPassword)
}

// applyPasswordChange hashes and stores the new password, rotates the
// security stamp and sends the informational notice.
func (a *Accounts) applyPasswordChange(account domain.Account, newPassword string) (api.MessageResponse, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return api.MessageResponse{}, err
	}

	if err := a.storage.UpdatePassword(account.Id, string(passHash), uuid.NewString()); err != nil {
		return api.MessageResponse{}, err
	}

	if !a.notifySecurityChange(account.Email, "Your password was changed", "The password of your account was just changed. If this was not you, reset it immediately.") {
		return api.MessageResponse{Message: "Password changed, but the notification email could not be sent"}, nil
	}
	return api.MessageResponse{Message: "Password changed"}, nil
}

// Update changes the caller's login and/or email. An email change resets the
// confirmed flag, dispatches a confirmation to the new address and notifies
// the old address — the pre-change mailbox owner always learns about it.
func (a *Accounts) Update(req api.UpdateAccountRequest) (api.MessageResponse, error) {
	changes, err := validateUpdate(req.Username, req.NewUsername, req.NewEmail, req.ConfirmNewEmail)
	if err != nil {
		return api.MessageResponse{}, err
	}

	account, err := a.authenticate(req.Username, req.Password)
	if err != nil {
		return api.MessageResponse{}, err
	}

	return a.applyAccountChanges(account, changes)
}

func (a *Accounts) applyAccountChanges(account domain.Account, changes accountChanges) (api.MessageResponse, error) {
	newLogin := normalizeLogin(changes.newLogin)
	newEmail := normalizeEmail(changes.newEmail)

	// Neither new value may equal the corresponding current one.
	if newLogin != "" && newLogin == account.Login {
		return api.MessageResponse{}, errors.NewBadRequest("New username equals the current one")
	}
	if newEmail != "" && newEmail == account.Email {
		return api.MessageResponse{}, errors.NewBadRequest("New email equals the current one")
	}

	// The whole mutation commits in one storage call before any notification:
	// a uniqueness conflict on either field must leave nothing changed.
	switch {
	case newLogin != "" && newEmail != "":
		if err := a.storage.UpdateIdentity(account.Id, newLogin, newEmail, uuid.NewString()); err != nil {
			return api.MessageResponse{}, err
		}
	case newLogin != "":
		if err := a.storage.UpdateLogin(account.Id, newLogin, uuid.NewString()); err != nil {
			return api.MessageResponse{}, err
		}
	case newEmail != "":
		if err := a.storage.UpdateEmail(account.Id, newEmail, uuid.NewString()); err != nil {
			return api.MessageResponse{}, err
		}
	}

	if newEmail != "" {
		// the informational notice goes to the PRE-change address
		delivered := a.notifySecurityChange(account.Email, "Your email address was changed",
			fmt.Sprintf("The email address of your account was changed to %q. If this was not you, contact support immediately.", newEmail))

		resp, err := a.dispatchConfirmation(account.Id, newEmail, "Account updated.")
		if err != nil {
			return api.MessageResponse{}, err
		}
		resp.Message += " The new email address must be confirmed before the next login."
		if !delivered {
			resp.Message += " The notice to the previous address could not be sent."
		}
		return resp, nil
	}

	// login-only change: notify the (unchanged) account email
	delivered := a.notifySecurityChange(account.Email, "Your username was changed",
		fmt.Sprintf("The username of your account was changed to %q. If this was not you, reset your password immediately.", newLogin))

	message := "Account updated"
	if !delivered {
		message += ", but the notification email could not be sent"
	}
	return api.MessageResponse{Message: message}, nil
}

// AdminResetPassword lets an admin set a new password for any account. A
// missing target is 404, distinct from unauthorized, and sends nothing.
func (a *Accounts) AdminResetPassword(req api.AdminResetPasswordRequest) (api.MessageResponse, error) {
	if err := validateAdminResetPassword(req); err != nil {
		return api.MessageResponse{}, err
	}

	if _, err := a.authenticateAdmin(req.Username, req.Password); err != nil {
		return api.MessageResponse{}, err
	}

	target, err := a.resolve(req.Target)
	if err != nil {
		if errors.IsNotFound(err) {
			return api.MessageResponse{}, errors.NewNotFound("Target account not found")
		}
		return api.MessageResponse{}, err
	}

	return a.applyPasswordChange(target, req.NewPassword)
}

// AdminUpdate lets an admin change the login/email of any account, with the
// same side-effects as a self-service update.
func (a *Accounts) AdminUpdate(req api.AdminUpdateAccountRequest) (api.MessageResponse, error) {
	changes, err := validateUpdate(req.Username, req.NewUsername, req.NewEmail, req.ConfirmNewEmail)
	if err != nil {
		return api.MessageResponse{}, err
	}
	if err := validateAdminTarget(req.Target); err != nil {
		return api.MessageResponse{}, err
	}

	if _, err := a.authenticateAdmin(req.Username, req.Password); err != nil {
		return api.MessageResponse{}, err
	}

	target, err := a.resolve(req.Target)
	if err != nil {
		if errors.IsNotFound(err) {
			return api.MessageResponse{}, errors.NewNotFound("Target account not found")
		}
		return api.MessageResponse{}, err
	}

	return a.applyAccountChanges(target, changes)
}

// ConfirmEmail validates and consumes a confirmation token. The endpoint is
// unauthenticated by design: the token itself proves identity.
func (a *Accounts) ConfirmEmail(accountId domain.AccountId, token string) (api.MessageResponse, error) {
	if accountId == "" || token == "" {
		return api.MessageResponse{}, errors.NewBadRequest("userId and token are required")
	}

	account, err := a.storage.AccountById(accountId)
	if err != nil {
		if errors.IsNotFound(err) {
			return api.MessageResponse{}, errors.NewNotFound("Account not found")
		}
		return api.MessageResponse{}, err
	}

	if err := a.storage.ConsumeConfirmationToken(account.Id, hashToken(token)); err != nil {
		if errors.IsNotFound(err) {
			return api.MessageResponse{}, errors.NewBadRequest("Invalid or already used confirmation token")
		}
		return api.MessageResponse{}, err
	}

	if err := a.storage.ConfirmEmail(account.Id); err != nil {
		return api.MessageResponse{}, err
	}

	return api.MessageResponse{Message: "Email confirmed. You can login now."}, nil
}

// ResendConfirmation re-dispatches the confirmation link for an unconfirmed
// account.
func (a *Accounts) ResendConfirmation(req api.ResendConfirmationRequest) (api.MessageResponse, error) {
	if err := validateResendConfirmation(req); err != nil {
		return api.MessageResponse{}, err
	}

	account, err := a.storage.AccountByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.IsNotFound(err) {
			return api.MessageResponse{}, errors.NewNotFound("Account not found")
		}
		return api.MessageResponse{}, err
	}

	if account.EmailConfirmed {
		return api.MessageResponse{}, errors.NewBadRequest("Email is already confirmed")
	}

	return a.dispatchConfirmation(account.Id, account.Email, "Confirmation requested.")
}

// notifySecurityChange sends an informational notice about a committed
// credential change. Returns false when delivery failed; seeded default
// accounts are skipped and count as delivered.
func (a *Accounts) notifySecurityChange(recipient domain.Email, subject, text string) bool {
	if a.isDefaultAccount(recipient) {
		return true
	}
	msg := domain.EmailMessage{
		Recipient: recipient,
		Subject:   subject,
		HTMLBody:  "<p>" + text + "</p>",
		TextBody:  text,
	}
	if err := a.notifier.Send(msg); err != nil {
		logger.Log.Error("failed to send security notice", "recipient_subject", subject, "error", err)
		return false
	}
	return true
}
