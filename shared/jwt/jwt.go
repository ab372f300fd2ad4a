package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/logger"
)

type JwtService interface {
	NewToken(account domain.Account) (string, time.Time, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

// Claims is the decoded, validated claim set handed to middleware.
type Claims struct {
	AccountId domain.AccountId
	Login     domain.Login
	Roles     []string
	TokenId   string
}

func (c *Claims) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == domain.RoleAdmin {
			return true
		}
	}
	return false
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
	issuer    string
	audience  string
}

func New(secretKey string, ttl time.Duration, issuer, audience string) JwtService {
	return &Jwt{secretKey, ttl, issuer, audience}
}

// NewToken builds the claim set from the account roles plus a fresh per-token
// id and the login name, signs it with HS256 and returns the encoded token
// with its expiry. The expiry is fixed at issuance time + ttl.
func (j *Jwt) NewToken(account domain.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.ttl)

	claims := jwt.MapClaims{}
	claims["sub"] = account.Id
	claims["name"] = account.Login
	claims["jti"] = uuid.NewString()
	claims["roles"] = account.Roles
	claims["iss"] = j.issuer
	claims["aud"] = j.audience
	claims["exp"] = expiresAt.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", time.Time{}, internal_errors.NewUnauthorized("Can't create token")
	}

	return tokenString, expiresAt, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.NewUnauthorized("Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(j.issuer), jwt.WithAudience(j.audience), jwt.WithExpirationRequired())
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, internal_errors.NewUnauthorized("Invalid access token")
	}
	if !token.Valid {
		return nil, internal_errors.NewUnauthorized("Invalid access token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.NewUnauthorized("Invalid token claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, internal_errors.NewUnauthorized("Invalid token claims")
	}
	name, ok := mapClaims["name"].(string)
	if !ok {
		return nil, internal_errors.NewUnauthorized("Invalid token claims")
	}
	jti, ok := mapClaims["jti"].(string)
	if !ok {
		return nil, internal_errors.NewUnauthorized("Invalid token claims")
	}

	var roles []string
	if rawRoles, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return &Claims{AccountId: sub, Login: name, Roles: roles, TokenId: jti}, nil
}
