package entity

import "time"

// Vehicle vehículo registrado por una empresa automotive. Una orden de
// trabajo puede referenciarlo solo en esa industria.
type Vehicle struct {
	ID            string
	CompanyID     string
	PlateNumber   string
	Make          string
	Model         string
	Year          *int
	VIN           string
	OwnerClientID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
