package services

import "errors"

var (
	// ErrUnauthorized: не удалось подтвердить личность вызывающего.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrForbidden: роль пользователя не входит в разрешённый набор.
	ErrForbidden = errors.New("access denied")
	// ErrConflict: имя пользователя уже занято.
	ErrConflict = errors.New("username already exists")
	// ErrBadRequest: входные данные не прошли проверку.
	ErrBadRequest = errors.New("bad request")
	// ErrInternal: нарушена внутренняя согласованность данных.
	ErrInternal = errors.New("internal server error")
)

// ValidationError ошибка проверки входных данных с сообщением для клиента.
// errors.Is(err, ErrBadRequest) истинно для любой ValidationError.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

var (
	ErrInvalidRole      = &ValidationError{Msg: "invalid role"}
	ErrInvalidEmail     = &ValidationError{Msg: "invalid email format"}
	ErrPasswordTooShort = &ValidationError{Msg: "password must be at least 6 characters long"}
	ErrEmptyUsername    = &ValidationError{Msg: "username is required"}
)

// ErrInvalidCredentials возвращается при входе с неизвестным именем или неверным паролем.
var ErrInvalidCredentials = &credentialsError{}

type credentialsError struct{}

func (*credentialsError) Error() string { return "incorrect username or password" }

func (*credentialsError) Is(target error) bool { return target == ErrUnauthorized }
