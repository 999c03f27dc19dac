package devserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user a development token is issued for.
type Identity struct {
	UserID string
	Role   string
	Name   string
	Email  string
}

type devClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"rol"`
	Name  string `json:"nombre,omitempty"`
	Email string `json:"correo,omitempty"`
}

// TokenIssuer signs HS256 tokens accepted by the API's write routes.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type TokenIssuerConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

func NewTokenIssuer(cfg TokenIssuerConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

func (ti *TokenIssuer) Issue(id Identity) (string, error) {
	if len(ti.secret) == 0 {
		return "", errors.New("sign token: empty secret")
	}
	if id.UserID == "" {
		return "", errors.New("sign token: empty user id")
	}

	now := ti.now()
	claims := devClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.UserID,
			Issuer:   ti.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role:  id.Role,
		Name:  id.Name,
		Email: id.Email,
	}
	if ti.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ti.ttl))
	}

	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tk, nil
}
