package entity

import "time"

// Roles de usuario.
const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleEmployee   = "EMPLOYEE"
	RoleClient     = "CLIENT"
)

// User cuenta de acceso al sistema. CompanyID vacío solo para SUPERADMIN.
type User struct {
	ID           string
	CompanyID    string
	Role         string
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
