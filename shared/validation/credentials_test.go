package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid", "customer@example.com", true},
		{"exactly six local chars", "abcdef@example.com", true},
		{"local part too short", "ab@cd.com", false},
		{"five local chars", "abcde@example.com", false},
		{"starts with symbol", "_abcdef@example.com", false},
		{"ends with symbol", "abcdef.@example.com", false},
		{"symbols inside local part", "first.last+tag@example.com", true},
		{"missing at sign", "abcdefexample.com", false},
		{"single char tld", "abcdef@example.c", false},
		{"two char tld", "abcdef@example.co", true},
		{"subdomain", "abcdef@mail.example.com", true},
		{"empty", "", false},
		{"missing domain", "abcdef@", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestLooksLikeEmail(t *testing.T) {
	// The lenient pattern has no local-part minimum: it decides lookup
	// strategy, it does not gate new addresses.
	assert.True(t, LooksLikeEmail("ab@cd.com"))
	assert.True(t, LooksLikeEmail("a@cd.com"))
	assert.True(t, LooksLikeEmail("customer@example.com"))
	assert.False(t, LooksLikeEmail("_ab@cd.com"))
	assert.False(t, LooksLikeEmail("customer"))
	assert.False(t, LooksLikeEmail("ab@cd.c"))
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"valid", "customer1", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"maximum length", "abcdefghijklmnopqrstuvwxyz0123", true},
		{"too long", "abcdefghijklmnopqrstuvwxyz01234", false},
		{"inner symbols ok", "first.last-x", true},
		{"at sign inside", "user@shop", true},
		{"starts with symbol", ".customer", false},
		{"ends with symbol", "customer_", false},
		{"forbidden char", "cust omer", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Aa1@aaaa", true},
		{"too short", "Aa1@aaa", false},
		{"multibyte runes count as single characters", "Aa1@éé", false},
		{"eight multibyte characters", "Aa1@éééé", true},
		{"no lowercase", "AA1@AAAA", false},
		{"no uppercase", "aa1@aaaa", false},
		{"no digit", "Aax@aaaa", false},
		{"no symbol", "Aa1aaaaa", false},
		{"symbol outside allowed set", "Aa1?aaaa", false},
		{"backslash symbol", `Aa1\aaaa`, true},
		{"equals symbol", "Aa1=aaaa", true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.NoError(t, Identifier("customer1"))
	assert.NoError(t, Identifier("ab@cd.com")) // lenient email shape resolves existing accounts
	assert.Error(t, Identifier("x"))
	assert.Error(t, Identifier(""))
}
