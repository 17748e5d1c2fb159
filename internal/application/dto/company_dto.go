package dto

import "time"

// CreateCompanyRequest entrada para registrar una empresa (solo SUPERADMIN).
type CreateCompanyRequest struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry"`
	Description  string    `json:"description,omitempty"`
	Address      string    `json:"address,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Companies  []CompanyResponse `json:"companies"`
	Pagination Pagination        `json:"pagination"`
}
