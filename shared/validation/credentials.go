// Package validation implements the field-format layer of the account
// validation pipeline: email, username and password rules shared by every
// account-mutating operation.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shoply-dev/shoply/shared/errors"
)

// Two email patterns exist on purpose. The strict one gates NEW addresses
// (registration, email update) and requires a local part of at least 6
// characters. The lenient one is used only to decide whether a supplied
// identifier should be resolved as an email or as a login name.
var (
	emailStrictRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._%+-]{4,}[A-Za-z0-9]@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	emailLenientRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._%+-]*[A-Za-z0-9])?@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	usernameRe     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]{1,28}[A-Za-z0-9]$`)
)

// passwordSymbols is the fixed allowed symbol set; at least one is required.
const passwordSymbols = `@./\-_&!#$%*()+=`

// IsValidEmail reports whether e is acceptable as a new account email:
// local part of 6+ characters that neither starts nor ends with one of
// "_.%+-", and a domain whose top-level label is at least 2 characters.
func IsValidEmail(e string) bool {
	return emailStrictRe.MatchString(e)
}

// LooksLikeEmail reports whether e has the shape of an email address without
// the new-address local-part minimum. Used to pick the lookup strategy when a
// field may carry either a login name or an email.
func LooksLikeEmail(e string) bool {
	return emailLenientRe.MatchString(e)
}

// IsValidUsername reports whether u is 3-30 characters of alphanumerics plus
// "._-@", not starting or ending with one of those symbols.
func IsValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}

// IsValidPassword reports whether p is at least 8 characters and contains a
// lowercase letter, an uppercase letter, a digit and a symbol from the
// allowed set.
func IsValidPassword(p string) bool {
	// length counts characters, not bytes
	if utf8.RuneCountInString(p) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Error-returning wrappers used by the accounts service. Every rejection
// carries a human-readable reason and maps to 400.

func NewEmail(e string) error {
	if !IsValidEmail(e) {
		return errors.NewBadRequest("Email is invalid: expected at least 6 characters before @, not starting or ending with '_.%+-', and a valid domain")
	}
	return nil
}

func Username(u string) error {
	if !IsValidUsername(u) {
		return errors.NewBadRequest("Username is invalid: expected 3-30 characters, alphanumeric plus '._-@', not starting or ending with a symbol")
	}
	return nil
}

func Password(p string) error {
	if !IsValidPassword(p) {
		return errors.NewBadRequest("Password is invalid: expected at least 8 characters with a lowercase letter, an uppercase letter, a digit and a symbol from " + passwordSymbols)
	}
	return nil
}

// Identifier validates a field that may carry either a login name or an
// email address.
func Identifier(s string) error {
	if LooksLikeEmail(s) || IsValidUsername(s) {
		return nil
	}
	return errors.NewBadRequest("Identifier is invalid: expected a username or an email address")
}
