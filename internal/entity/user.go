package entity

import (
	"errors"
	"time"
)

var ErrEmailAlreadyExists = errors.New("email already registered")

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSalesAgent Role = "SalesAgent"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSalesAgent
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
