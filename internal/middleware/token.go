package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/ministryflow/domain"
)

// Claims carried by session tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
}

func NewTokenIssuer(secret, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token that expires together with the session.
func (i *TokenIssuer) Issue(session *domain.Session) (string, error) {
	if session == nil {
		return "", domain.ErrUnauthorized
	}
	claims := Claims{
		UserID:    session.UserID,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "invalid token", err)
	}
	if i.issuer != "" && !claims.VerifyIssuer(i.issuer, true) {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "invalid token issuer")
	}
	if claims.SessionID == "" {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "token has no session")
	}
	return claims, nil
}
