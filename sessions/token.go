package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session or admin token.
type Claims struct {
	SessionID string   `json:"sid,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer for tokens valid for ttl.
func NewIssuer(signingKey, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{key: []byte(signingKey), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue returns a signed token naming session id.
func (i *Issuer) Issue(id string) (string, error) {
	return i.sign(Claims{SessionID: id, RegisteredClaims: jwt.RegisteredClaims{Subject: id}})
}

// IssueWithRoles returns a signed token for subject carrying roles.
func (i *Issuer) IssueWithRoles(subject string, roles []string) (string, error) {
	return i.sign(Claims{Roles: roles, RegisteredClaims: jwt.RegisteredClaims{Subject: subject}})
}

func (i *Issuer) sign(c Claims) (string, error) {
	now := i.now()
	c.Issuer = i.issuer
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
