package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Clients ───────────────────────────────────────────────────────────────────

// CreateClientRequest entrada para registrar un cliente final.
type CreateClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── Employees ─────────────────────────────────────────────────────────────────

// CreateEmployeeRequest entrada para registrar un técnico.
type CreateEmployeeRequest struct {
	UserID     string           `json:"user_id"`
	Position   string           `json:"position"`
	Skills     []string         `json:"skills"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
}

// EmployeeResponse salida de un técnico.
type EmployeeResponse struct {
	ID         string           `json:"id"`
	CompanyID  string           `json:"company_id"`
	UserID     string           `json:"user_id"`
	Position   string           `json:"position,omitempty"`
	Skills     []string         `json:"skills"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ── Vehicles ──────────────────────────────────────────────────────────────────

// CreateVehicleRequest entrada para registrar un vehículo (automotive).
type CreateVehicleRequest struct {
	PlateNumber   string `json:"plate_number"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          *int   `json:"year"`
	VIN           string `json:"vin"`
	OwnerClientID string `json:"owner_client_id"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	PlateNumber   string    `json:"plate_number"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          *int      `json:"year,omitempty"`
	VIN           string    `json:"vin,omitempty"`
	OwnerClientID string    `json:"owner_client_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
