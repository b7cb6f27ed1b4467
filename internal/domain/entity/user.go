package entity

import "time"

// Roles de utilizador do backoffice.
const (
	RoleAdmin      = "admin"
	RoleSecretaria = "secretaria"
	RoleFinanceiro = "financeiro"
)

// User utilizador do backoffice da escola.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio depois de persistir
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
