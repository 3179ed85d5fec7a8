package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/application/reports"
)

const (
	summaryKey = "dashboard:summary"
	summaryTTL = 60 * time.Second // el dashboard tolera datos de hasta un minuto
)

var _ reports.SummaryCache = (*SummaryCache)(nil)

// SummaryCache caché cache-aside del resumen del dashboard.
type SummaryCache struct {
	client *goredis.Client
}

// NewSummaryCache construye el caché del dashboard.
func NewSummaryCache(client *goredis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// GetSummary devuelve el resumen cacheado si existe. (nil, false, nil) en miss.
func (c *SummaryCache) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var summary dto.DashboardSummaryDTO
	if err := json.Unmarshal(raw, &summary); err != nil {
		// Entrada corrupta: tratarla como miss
		return nil, false, nil
	}
	return &summary, true, nil
}

// SetSummary guarda el resumen con TTL corto.
func (c *SummaryCache) SetSummary(ctx context.Context, summary *dto.DashboardSummaryDTO) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey, raw, summaryTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
