package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-secret-key"

func testAccount() domain.Account {
	return domain.Account{
		Id:    "acc-1",
		Login: "customer1",
		Email: "customer@example.com",
		Roles: []string{domain.RoleUser},
	}
}

func TestNewTokenRoundTrip(t *testing.T) {
	svc := New(testKey, 3*time.Hour, "shoply-accounts", "shoply")

	tokenString, expiresAt, err := svc.NewToken(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	// Expiry is fixed at issuance + 3h
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.DecodeToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountId)
	assert.Equal(t, "customer1", claims.Login)
	assert.Equal(t, []string{domain.RoleUser}, claims.Roles)
	assert.NotEmpty(t, claims.TokenId)
	assert.False(t, claims.IsAdmin())
}

func TestTokenIdsAreUnique(t *testing.T) {
	svc := New(testKey, time.Hour, "shoply-accounts", "shoply")

	t1, _, err := svc.NewToken(testAccount())
	require.NoError(t, err)
	t2, _, err := svc.NewToken(testAccount())
	require.NoError(t, err)

	c1, err := svc.DecodeToken(t1)
	require.NoError(t, err)
	c2, err := svc.DecodeToken(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenId, c2.TokenId)
}

func TestDecodeTokenRejectsWrongKey(t *testing.T) {
	svc := New(testKey, time.Hour, "shoply-accounts", "shoply")
	other := New("other-key", time.Hour, "shoply-accounts", "shoply")

	tokenString, _, err := other.NewToken(testAccount())
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	assert.Error(t, err)
}

func TestDecodeTokenRejectsWrongIssuerOrAudience(t *testing.T) {
	svc := New(testKey, time.Hour, "shoply-accounts", "shoply")

	for _, bad := range []JwtService{
		New(testKey, time.Hour, "someone-else", "shoply"),
		New(testKey, time.Hour, "shoply-accounts", "someone-else"),
	} {
		tokenString, _, err := bad.NewToken(testAccount())
		require.NoError(t, err)

		_, err = svc.DecodeToken(tokenString)
		assert.Error(t, err)
	}
}

func TestDecodeTokenRejectsExpired(t *testing.T) {
	svc := New(testKey, -time.Minute, "shoply-accounts", "shoply")

	tokenString, _, err := svc.NewToken(testAccount())
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	assert.Error(t, err)
}

func TestDecodeTokenRejectsNonHMAC(t *testing.T) {
	svc := New(testKey, time.Hour, "shoply-accounts", "shoply")

	// alg=none style token must never pass
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"sub": "acc-1", "name": "customer1", "jti": "x",
		"iss": "shoply-accounts", "aud": "shoply",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	assert.Error(t, err)
}

func TestAdminRoleClaim(t *testing.T) {
	svc := New(testKey, time.Hour, "shoply-accounts", "shoply")

	acc := testAccount()
	acc.Roles = []string{domain.RoleAdmin, domain.RoleUser}
	tokenString, _, err := svc.NewToken(acc)
	require.NoError(t, err)

	claims, err := svc.DecodeToken(tokenString)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}
