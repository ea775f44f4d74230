package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeWrite grants access to the mutating user routes.
const ScopeWrite = "users:write"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidScope = errors.New("token scope does not allow this operation")
)

type Service struct {
	jwtSecret string
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

// Enabled reports whether a signing secret is configured.
func (s *Service) Enabled() bool { return s != nil && s.jwtSecret != "" }

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(subject, scope string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses an HS256 token and requires the write scope.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) { return []byte(s.jwtSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Scope != ScopeWrite {
		return nil, ErrInvalidScope
	}
	return claims, nil
}
