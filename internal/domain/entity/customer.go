package entity

import "time"

// Customer representa un cliente registrado (opcional en las ventas).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
