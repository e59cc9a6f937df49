package security

import (
	"errors"
	"fmt"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/dgrijalva/jwt-go"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	issuer            = "roboshop"
)

// Claims carries the actor in the session token.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// JWTIssuer signs session tokens with HS256.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *JWTIssuer) Issue(actor user.Actor) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Role: string(actor.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   actor.ID.String(),
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (i *JWTIssuer) Parse(token string) (user.Actor, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return user.Actor{}, errs.NewUnauthorizedError(reason(err))
	}
	if claims.Issuer != issuer {
		return user.Actor{}, errs.NewUnauthorizedError("token was not issued by this service")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Actor{}, errs.NewUnauthorizedError("token subject is malformed")
	}
	actor, err := user.NewActor(id, user.Role(claims.Role))
	if err != nil {
		return user.Actor{}, errs.NewUnauthorizedError("token role is malformed")
	}
	return actor, nil
}

func reason(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
		return "session expired"
	}
	return "invalid session token"
}
