package dto

import (
	"encoding/json"
	"time"
)

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token y datos mínimos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de usuario (ADMIN o SUPERADMIN).
type CreateUserRequest struct {
	CompanyID   string `json:"company_id"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id,omitempty"`
	Role        string     `json:"role"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// NotificationResponse aviso in-app.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	SentAt    time.Time       `json:"sent_at"`
	CompanyID string          `json:"company_id"`
}
