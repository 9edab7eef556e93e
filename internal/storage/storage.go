// Package storage описывает ошибки хранилища пользователей и ролей,
// общие для всех реализаций.
package storage

import "errors"

var (
	// ErrUserNotFound: пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists: пользователь с таким именем уже существует.
	ErrUserExists = errors.New("user already exists")
	// ErrRoleNotFound: роль не найдена.
	ErrRoleNotFound = errors.New("role not found")
)
