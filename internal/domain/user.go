package domain

import "github.com/ezstore-dev/go-backend/pkg/e"

// Role — роль пользователя
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// ParseRole валидирует строковое представление роли.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", e.ErrInvalidRole
	}
}

// User описывает пользователя системы
type User struct {
	Username string
	Name     string
	Surname  string
	Role     Role
}

func NewUser(username, name, surname string, role Role) *User {
	return &User{
		Username: username,
		Name:     name,
		Surname:  surname,
		Role:     role,
	}
}
