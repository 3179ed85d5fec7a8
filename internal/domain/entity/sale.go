package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago válidos para Sale.
const (
	PaymentCash      = "CASH"
	PaymentCard      = "CARD"
	PaymentMobilePay = "MOBILE_PAY"
)

// ValidPaymentType indica si el medio de pago pertenece a la enumeración.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentCash, PaymentCard, PaymentMobilePay:
		return true
	}
	return false
}

// Sale representa una transacción completada.
// Invariante: Total = Σ(item.Price × item.Quantity) − Discount, nunca negativo.
// Una venta no se edita: solo se crea (con sus líneas) o se elimina revirtiendo el stock.
type Sale struct {
	ID          string
	UserID      string // usuario que registró la venta
	CustomerID  string // vacío si fue venta sin cliente
	Total       decimal.Decimal
	Discount    decimal.Decimal
	PaymentType string // CASH, CARD, MOBILE_PAY
	CreatedAt   time.Time
}

// SaleItem representa una línea de producto dentro de una venta.
// Price es el precio unitario capturado al momento de la venta; no se relee
// del catálogo después, así el historial sobrevive a cambios de precio.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal devuelve Price × Quantity de la línea.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
