// Package jwt реализует выпуск и проверку подписанных JWT токенов.
//
// Maker подписывает токены алгоритмом HS256 общим для процесса секретом.
// Токен содержит только subject (имя пользователя) и срок действия.
// Access и refresh токены различаются лишь временем жизни.
package jwt

import (
	"time"
)

// Reason причина, по которой токен не прошёл проверку.
type Reason string

const (
	// ReasonExpired: срок действия токена истёк.
	ReasonExpired Reason = "expired"
	// ReasonInvalid: подпись, формат или набор claims некорректны.
	ReasonInvalid Reason = "invalid"
)

// TokenError описывает ошибку выпуска или проверки токена.
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + string(e.Reason)
	}
	return "token " + string(e.Reason) + ": " + e.Err.Error()
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Claims — проверенные данные токена.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Maker выпускает и проверяет токены с секретным ключом.
type Maker struct {
	secretKey []byte
	now       func() time.Time
}

// Option настраивает Maker.
type Option func(*Maker)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *Maker) {
		m.now = now
	}
}

// NewJWTMaker создаёт Maker на основе секретного ключа.
func NewJWTMaker(secretKey string, opts ...Option) *Maker {
	m := &Maker{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
