package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// Los nombres de campo siguen el contrato que consume el front móvil
// (camelCase), a diferencia del resto de la API.
type CreateSaleRequest struct {
	CustomerID  string            `json:"customerId,omitempty"`
	Items       []SaleItemRequest `json:"items"`
	PaymentType string            `json:"paymentType,omitempty"` // default CASH
	Discount    decimal.Decimal   `json:"discount"`              // default 0
}

// SaleItemRequest línea del carrito: producto, cantidad y precio unitario.
type SaleItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse venta con sus líneas (y cliente si lo hay).
type SaleResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	Customer    *CustomerResponse  `json:"customer,omitempty"`
	Items       []SaleItemResponse `json:"items"`
	Total       decimal.Decimal    `json:"total"`
	Discount    decimal.Decimal    `json:"discount"`
	PaymentType string             `json:"paymentType"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	PageRequest
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`   // YYYY-MM-DD
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Meta  PageResponse   `json:"meta"`
}
