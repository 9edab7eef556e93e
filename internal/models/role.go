package models

// Имена ролей, создаваемых миграцией при первом запуске.
const (
	RoleAdmin     = "Admin"
	RoleUser      = "User"
	RoleModerator = "Moderator"
)

// Role — именованная категория доступа. Пользователь принадлежит ровно одной роли.
type Role struct {
	ID   int64
	Name string
}

// TokenPair — токены, выдаваемые при входе.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenTypeBearer тип токена в ответе на вход.
const TokenTypeBearer = "bearer"
