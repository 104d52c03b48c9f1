package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stafftrack/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Issuer signs and verifies the bearer tokens handed out at login.
// Tokens carry only the user id; the authenticated user is re-resolved
// from the identity store on every request so deactivation takes
// effect immediately.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type claims struct {
	jwt.RegisteredClaims
}

func (iss *Issuer) Issue(userID model.ID, now time.Time) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl)),
		},
	})

	return tok.SignedString(iss.secret)
}

func (iss *Issuer) Verify(tokenString string) (model.ID, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return iss.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.ID{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(cl.Subject)
	if err != nil {
		return model.ID{}, ErrInvalidToken
	}

	return userID, nil
}
