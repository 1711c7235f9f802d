package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidToken = errors.New("invalid token")

// Service checks access tokens minted by the identity provider. Minting is
// only used by the seeder and tests.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Claims identify the caller. The user id falls back to "sub" so tokens
// from providers that omit the custom claim still work.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwtlib.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c.Role == RoleAdmin }

func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Service) GenerateToken(userID, role string) (string, error) {
	if role == "" {
		role = RoleUser
	}
	issued := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(issued),
			ExpiresAt: jwtlib.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(raw, claims,
		func(*jwtlib.Token) (any, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	if claims.Role == "" {
		claims.Role = RoleUser
	}
	return claims, nil
}
