package models

import "time"

type Role string // Роль пользователя

const (
	ClientRole      Role = "client"
	TransporterRole Role = "transporter"
	AdminRole       Role = "admin"
)

// Valid сообщает, известна ли роль.
func (r Role) Valid() bool {
	return r == ClientRole || r == TransporterRole || r == AdminRole
}

// User представляет учётную запись клиента, перевозчика или администратора.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Phone        string    `json:"phone" db:"phone"`
	Company      string    `json:"company" db:"company"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// RegisterRequest представляет структуру запроса на регистрацию.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Role     Role   `json:"role"`
}

// LoginRequest представляет структуру запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse - выданный токен доступа и профиль пользователя.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        User   `json:"user"`
}
