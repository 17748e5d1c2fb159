package entity

import "time"

// Client cliente final de una empresa (solicitante de órdenes de trabajo).
type Client struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
