// Package password реализует хеширование и проверку паролей пользователей.
//
// Hasher создаёт bcrypt-хеш пароля со свежей солью и сравнивает пароль с хешем
// за постоянное время. Ошибки библиотеки при хешировании возвращаются как
// *HashingError, а любые ошибки при сравнении сводятся к false.
//
// bcrypt учитывает только первые MaxPasswordBytes байт пароля. Более длинные
// пароли обрезаются до этой длины и при хешировании, и при проверке.
package password

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
)

// MaxPasswordBytes сколько байт пароля учитывает bcrypt.
const MaxPasswordBytes = 72

// HashingError описывает неожиданную ошибка криптографической библиотеки.
type HashingError struct {
	Op  string
	Err error
}

func (e *HashingError) Error() string {
	return fmt.Sprintf("%s: hashing failed: %v", e.Op, e.Err)
}

func (e *HashingError) Unwrap() error {
	return e.Err
}

// Hasher хеширует пароли bcrypt с заданной стоимостью.
type Hasher struct {
	cost int
	log  *slog.Logger
}

// NewHasher создаёт Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на bcrypt.DefaultCost.
func NewHasher(cost int, log *slog.Logger) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		cost: cost,
		log:  log,
	}
}

// Hash возвращает bcrypt-хеш пароля. Каждый вызов использует новую соль.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", &HashingError{Op: op, Err: err}
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хешу.
func (h *Hasher) Verify(password, hash string) bool {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.log.Error("failed to compare password hash", slog.String("op", op), sl.Err(err))
	}
	return false
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		return b[:MaxPasswordBytes]
	}
	return b
}
