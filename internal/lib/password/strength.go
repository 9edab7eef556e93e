package password

import "unicode"

// MinStrongLength минимальная длина пароля для MeetsStrength.
const MinStrongLength = 8

// MeetsStrength проверяет пароль на сложность: не короче MinStrongLength,
// есть заглавная и строчная буква, цифра и символ, не являющийся ни буквой, ни цифрой.
//
// Регистрация эту проверку не использует, там действует только минимальная длина.
func MeetsStrength(password string) bool {
	if len([]rune(password)) < MinStrongLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
