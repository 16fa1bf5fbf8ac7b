package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/golang-jwt/jwt/v4"
)

const issuer = "events-assistant"

type InvalidTokenError struct {
	err error
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %v", e.err)
}

func (e *InvalidTokenError) Unwrap() error {
	return e.err
}

type claims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens carrying an identity.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) CreateToken(identity model.Identity) (string, error) {
	if identity.ID == "" {
		return "", errors.New("identity without id")
	}

	now := m.now()
	c := &claims{
		Name:  identity.DisplayName,
		Roles: identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// ParseToken returns *InvalidTokenError for any token that must be rejected.
func (m *Manager) ParseToken(token string) (model.Identity, error) {
	c := &claims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}

	if _, err := parser.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}); err != nil {
		return model.Identity{}, &InvalidTokenError{err: err}
	}

	if !c.VerifyIssuer(issuer, true) {
		return model.Identity{}, &InvalidTokenError{err: errors.New("unexpected issuer")}
	}
	if c.Subject == "" {
		return model.Identity{}, &InvalidTokenError{err: errors.New("missing subject")}
	}

	return model.Identity{
		ID:          c.Subject,
		DisplayName: c.Name,
		Roles:       c.Roles,
	}, nil
}
