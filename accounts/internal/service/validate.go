package service

import (
	"strings"

	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/validation"
)

// One validation function per operation, applied after the structural layer
// (DecodeValidate in the handler) and before any store access. Each
// short-circuits on the first failing rule; no mutation happens after a
// rejection.

func validateRegistration(req api.RegisterRequest) error {
	if err := validation.Identifier(req.Username); err != nil {
		return err
	}
	if err := validation.NewEmail(req.Email); err != nil {
		return err
	}
	if !strings.EqualFold(req.Email, req.ConfirmEmail) {
		return errors.NewBadRequest("Email and its confirmation do not match")
	}
	if err := validation.Password(req.Password); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return errors.NewBadRequest("Password and its confirmation do not match")
	}
	return nil
}

func validateLogin(req api.LoginRequest) error {
	return validation.Identifier(req.Username)
}

func validateResetPassword(req api.ResetPasswordRequest) error {
	if err := validation.Identifier(req.Username); err != nil {
		return err
	}
	if err := validation.Password(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return errors.NewBadRequest("New password and its confirmation do not match")
	}
	if req.NewPassword == req.Password {
		return errors.NewBadRequest("New password must differ from the current one")
	}
	return nil
}

// accountChanges is the validated outcome of an update request: which of the
// two mutable identifiers the caller wants to change.
type accountChanges struct {
	newLogin string // empty when unchanged
	newEmail string // empty when unchanged
}

func validateUpdate(identifier, newUsername, newEmail, confirmNewEmail string) (accountChanges, error) {
	var changes accountChanges

	if err := validation.Identifier(identifier); err != nil {
		return changes, err
	}
	if newUsername == "" && newEmail == "" {
		return changes, errors.NewBadRequest("Nothing to update: provide a new username or a new email")
	}
	if newUsername != "" {
		if err := validation.Username(newUsername); err != nil {
			return changes, err
		}
		changes.newLogin = newUsername
	}
	if newEmail != "" {
		if err := validation.NewEmail(newEmail); err != nil {
			return changes, err
		}
		if !strings.EqualFold(newEmail, confirmNewEmail) {
			return changes, errors.NewBadRequest("New email and its confirmation do not match")
		}
		changes.newEmail = newEmail
	}
	return changes, nil
}

func validateAdminResetPassword(req api.AdminResetPasswordRequest) error {
	if err := validation.Identifier(req.Username); err != nil {
		return err
	}
	if err := validation.Identifier(req.Target); err != nil {
		return err
	}
	if err := validation.Password(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return errors.NewBadRequest("New password and its confirmation do not match")
	}
	return nil
}

func validateAdminTarget(target string) error {
	return validation.Identifier(target)
}

func validateResendConfirmation(req api.ResendConfirmationRequest) error {
	// The lenient pattern: this field resolves an existing account, it does
	// not gate a new address.
	if !validation.LooksLikeEmail(req.Email) {
		return errors.NewBadRequest("Email is invalid")
	}
	return nil
}
