// Package reports contiene los casos de uso de reportes de ventas para el
// dashboard del POS.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// SummaryCache caché opcional para el resumen del dashboard (cache-aside).
// Una implementación nil deshabilita el caché.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, bool, error)
	SetSummary(ctx context.Context, summary *dto.DashboardSummaryDTO) error
}

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: ReportRepository (consultas read-only). No accede
// directamente a la tabla de ventas; delega todo en el repositorio.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cache      SummaryCache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cache SummaryCache) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cache: cache}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. GetSalesMetrics(hoy)       → TodayRevenue + TodaySales
//  2. GetSalesMetrics(mes)       → MonthRevenue + MonthSales
//  3. GetTopProducts(mes, top 5) → TopProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if uc.cache != nil {
		if cached, ok, err := uc.cache.GetSummary(ctx); err == nil && ok {
			return cached, nil
		}
	}

	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type topResult struct {
		products []repository.TopProductResult
		err      error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rev, count, err := uc.reportRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, count, err}
	}()
	go func() {
		rev, count, err := uc.reportRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		monthCh <- metricsResult{rev, count, err}
	}()
	go func() {
		products, err := uc.reportRepo.GetTopProducts(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}

	summary := &dto.DashboardSummaryDTO{
		TodayRevenue: today.revenue.Round(2),
		TodaySales:   today.count,
		MonthRevenue: month.revenue.Round(2),
		MonthSales:   month.count,
		TopProducts:  make([]dto.TopProductDTO, 0, len(top.products)),
	}
	for _, p := range top.products {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitsSold: p.UnitsSold,
			Revenue:   p.Revenue.Round(2),
		})
	}

	if uc.cache != nil {
		// Best-effort: un fallo del caché no afecta la respuesta
		_ = uc.cache.SetSummary(ctx, summary)
	}
	return summary, nil
}
