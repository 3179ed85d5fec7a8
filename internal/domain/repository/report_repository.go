package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult fila del ranking de productos más vendidos.
type TopProductResult struct {
	ProductID string
	Name      string
	UnitsSold int
	Revenue   decimal.Decimal
}

// ReportRepository consultas de solo lectura para el dashboard de ventas.
type ReportRepository interface {
	// GetSalesMetrics devuelve ingresos y número de ventas en el rango [start, end].
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, count int, err error)
	// GetTopProducts devuelve los productos con más unidades vendidas en el rango.
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
}
