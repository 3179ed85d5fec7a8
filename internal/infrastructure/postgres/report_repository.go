package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación para el dashboard. Solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesMetrics devuelve ingresos (suma de totales) y número de ventas
// en el rango [start, end].
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at <= $2`
	var revenue decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales metrics: %w", err)
	}
	return revenue, count, nil
}

// GetTopProducts devuelve los productos con más unidades vendidas en el rango.
// El revenue por producto es quantity * price de cada línea (sin descuentos,
// que aplican a la venta completa).
func (r *ReportRepo) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.name, SUM(si.quantity)::int, COALESCE(SUM(si.quantity * si.price), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= $1 AND s.created_at <= $2
		GROUP BY p.id, p.name
		ORDER BY SUM(si.quantity) DESC, p.name
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var results []repository.TopProductResult
	for rows.Next() {
		var res repository.TopProductResult
		if err := rows.Scan(&res.ProductID, &res.Name, &res.UnitsSold, &res.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
