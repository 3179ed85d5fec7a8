// Package redis adaptadores sobre Redis: rate limiting de auth y caché
// del resumen del dashboard. Toda la funcionalidad es opcional; sin Redis
// configurado la aplicación opera igual, sin límite ni caché.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/tu-usuario/pos-movil/pkg/config"
)

// NewClient conecta a Redis y verifica con Ping.
func NewClient(cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
