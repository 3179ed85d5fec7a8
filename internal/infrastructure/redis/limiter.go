package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LimiterClient subconjunto de comandos Redis que usa el limiter.
// *goredis.Client lo satisface.
type LimiterClient interface {
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
}

var _ LimiterClient = (*goredis.Client)(nil)

// Limiter rate limiter de ventana fija sobre Redis (INCR + EXPIRE).
// Pensado para los endpoints de auth: N intentos por IP por ventana.
type Limiter struct {
	client LimiterClient
	max    int
	window time.Duration
}

// NewLimiter construye el limiter. max peticiones por window.
func NewLimiter(client LimiterClient, max int, window time.Duration) *Limiter {
	return &Limiter{client: client, max: max, window: window}
}

// Allow registra un intento para la clave y reporta si sigue dentro del límite.
// Solo el primer INCR de la ventana fija el TTL; renovarlo en cada petición
// convertiría la ventana fija en deslizante y el contador nunca expiraría
// mientras sigan llegando peticiones.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := "ratelimit:" + key

	n, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, fullKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.max), nil
}
