package domain

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthFlags é o par de flags de autenticação guardado no settings store
type AuthFlags struct {
	Authenticated   bool      `json:"authenticated"`
	AuthenticatedAt time.Time `json:"authenticated_at"`
	TokenID         string    `json:"token_id"`
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}

// SessionID é a chave usada para isolar as configurações de cada usuário
func (c *Claims) SessionID() string {
	return SessionIDForUser(c.UserID)
}

func SessionIDForUser(userID int) string {
	return fmt.Sprintf("user-%d", userID)
}
