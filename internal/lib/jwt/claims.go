package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errEmptySecret    = errors.New("signing secret is empty")
	errMissingSubject = errors.New("missing subject claim")
)

// Issue создаёт токен с claims {sub, exp = now + ttl}, подписанный HS256.
// exp хранится с точностью до секунды и округляется вверх, поэтому токен
// с любым положительным ttl валиден сразу после выпуска.
func (m *Maker) Issue(subject string, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	if len(m.secretKey) == 0 {
		return "", &TokenError{Reason: ReasonInvalid, Err: fmt.Errorf("%s: %w", op, errEmptySecret)}
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt(m.now(), ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", &TokenError{Reason: ReasonInvalid, Err: fmt.Errorf("%s: %w", op, err)}
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и возвращает его claims.
//
// Принимается только HS256, алгоритм из заголовка токена не учитывается.
// Истёкший токен даёт ReasonExpired, любая другая проблема даёт ReasonInvalid.
func (m *Maker) Verify(tokenStr string) (*Claims, error) {
	const op = "jwt.Verify"
	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &registered, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &TokenError{Reason: ReasonExpired, Err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil, &TokenError{Reason: ReasonInvalid, Err: fmt.Errorf("%s: %w", op, err)}
	}
	if !token.Valid {
		return nil, &TokenError{Reason: ReasonInvalid, Err: fmt.Errorf("%s: invalid token", op)}
	}
	if registered.Subject == "" {
		return nil, &TokenError{Reason: ReasonInvalid, Err: fmt.Errorf("%s: %w", op, errMissingSubject)}
	}
	return &Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}

func expiresAt(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if whole := exp.Truncate(time.Second); !whole.Equal(exp) {
		return whole.Add(time.Second)
	}
	return exp
}

func (m *Maker) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	if len(m.secretKey) == 0 {
		return nil, errEmptySecret
	}
	return m.secretKey, nil
}
