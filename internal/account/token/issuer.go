package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

// Lifetime is fixed; tokens are neither refreshed nor revoked.
const Lifetime = time.Hour

var (
	ErrMissingSigningKey = errors.New("jwt signing key is not configured")
	ErrInvalidToken      = errors.New("invalid token")
)

// Config carries the signing settings, validated once at construction.
type Config struct {
	SigningKey string `env:"JWT_KEY"`
	Issuer     string `env:"JWT_ISSUER"`
	Audience   string `env:"JWT_AUDIENCE"`
}

func (c Config) Validate() error {
	if c.SigningKey == "" {
		return ErrMissingSigningKey
	}
	return nil
}

// Claims is the identity claim-set embedded in every token.
type Claims struct {
	Email     string `json:"email"`
	GivenName string `json:"given_name"`
	Surname   string `json:"family_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 bearer tokens.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{
		key:      []byte(cfg.SigningKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue returns a signed token for u expiring Lifetime after issuance.
func (i *Issuer) Issue(u *entity.User) (string, error) {
	if i == nil || len(i.key) == 0 {
		return "", ErrMissingSigningKey
	}
	now := i.now().Truncate(time.Second)
	claims := Claims{
		Email:     u.Email,
		GivenName: u.FirstName,
		Surname:   u.LastName,
		Role:      u.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm, lifetime, issuer and audience.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if i == nil || len(i.key) == 0 {
		return nil, ErrMissingSigningKey
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
