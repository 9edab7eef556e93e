// Package models содержит доменные модели сервиса авторизации:
// пользователя, роль и пару выданных токенов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64  // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное, с учётом регистра)
	Email        string // Электронная почта
	PasswordHash string // bcrypt-хеш пароля, открытый пароль не хранится
	RoleID       int64  // Ссылка на роль пользователя
	Role         string // Имя роли, заполняется хранилищем при чтении
}

// UserView — публичное представление пользователя без хеша пароля.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// View формирует публичное представление пользователя с указанным именем роли.
func (u *User) View(roleName string) *UserView {
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     roleName,
	}
}
