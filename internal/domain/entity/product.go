package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es el contador de unidades disponibles; solo lo mutan las ventas
// (descuento al crear, reverso al eliminar) y el ajuste manual del catálogo.
type Product struct {
	ID          string
	CategoryID  string // vacío si no tiene categoría
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
