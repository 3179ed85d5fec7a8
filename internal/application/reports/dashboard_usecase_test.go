package reports_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/application/reports"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type queriedRange struct{ start, end time.Time }

type fakeReportRepo struct {
	mu          sync.Mutex
	ranges      []queriedRange
	topCalls    int
	failMetrics bool
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (r *fakeReportRepo) metricsCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ranges)
}

func (r *fakeReportRepo) GetSalesMetrics(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	r.mu.Lock()
	r.ranges = append(r.ranges, queriedRange{start, end})
	r.mu.Unlock()
	if r.failMetrics {
		return decimal.Zero, 0, errors.New("fake: consulta falló")
	}
	return decimal.NewFromFloat(150.75), 3, nil
}

func (r *fakeReportRepo) GetTopProducts(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProductResult, error) {
	r.mu.Lock()
	r.topCalls++
	r.mu.Unlock()
	return []repository.TopProductResult{
		{ProductID: "prod-a", Name: "Café", UnitsSold: 120, Revenue: decimal.NewFromInt(900)},
		{ProductID: "prod-b", Name: "Azúcar", UnitsSold: 80, Revenue: decimal.NewFromInt(640)},
	}, nil
}

type fakeSummaryCache struct {
	stored *dto.DashboardSummaryDTO
	hits   int
}

var _ reports.SummaryCache = (*fakeSummaryCache)(nil)

func (c *fakeSummaryCache) GetSummary(_ context.Context) (*dto.DashboardSummaryDTO, bool, error) {
	if c.stored == nil {
		return nil, false, nil
	}
	c.hits++
	return c.stored, true, nil
}

func (c *fakeSummaryCache) SetSummary(_ context.Context, s *dto.DashboardSummaryDTO) error {
	c.stored = s
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_ConsultaHoyMesYTop(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewDashboardUseCase(repo, nil)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.TodaySales)
	assert.True(t, decimal.NewFromFloat(150.75).Equal(out.TodayRevenue))
	assert.Equal(t, 3, out.MonthSales)

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Café", out.TopProducts[0].Name)
	assert.Equal(t, 120, out.TopProducts[0].UnitsSold)

	require.Equal(t, 2, repo.metricsCalls(), "una consulta para hoy y otra para el mes")
	assert.Equal(t, 1, repo.topCalls)

	// Verificar los rangos consultados: hoy 00:00 y día 1 del mes a las 00:00.
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	starts := map[time.Time]bool{repo.ranges[0].start: true, repo.ranges[1].start: true}
	assert.True(t, starts[todayStart], "debe consultarse el rango de hoy")
	assert.True(t, starts[monthStart], "debe consultarse el rango del mes")
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	uc := reports.NewDashboardUseCase(&fakeReportRepo{failMetrics: true}, nil)

	_, err := uc.GetSummary(context.Background())
	assert.Error(t, err)
}

// Segunda llamada con caché poblado: responde del caché sin reconsultar.
func TestGetSummary_UsaCache(t *testing.T) {
	repo := &fakeReportRepo{}
	cache := &fakeSummaryCache{}
	uc := reports.NewDashboardUseCase(repo, cache)

	first, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cache.stored, "el resumen debe quedar cacheado")

	callsAfterFirst := repo.metricsCalls()
	second, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, repo.metricsCalls(), "el hit de caché no debe reconsultar")
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}
