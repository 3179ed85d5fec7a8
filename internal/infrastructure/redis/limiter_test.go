package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-movil/internal/infrastructure/redis"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del cliente Redis
// ──────────────────────────────────────────────────────────────────────────────

type fakeLimiterClient struct {
	counts      map[string]int64
	expireCalls map[string]int
	failIncr    bool
}

func newFakeLimiterClient() *fakeLimiterClient {
	return &fakeLimiterClient{
		counts:      make(map[string]int64),
		expireCalls: make(map[string]int),
	}
}

func (f *fakeLimiterClient) Incr(ctx context.Context, key string) *goredis.IntCmd {
	if f.failIncr {
		return goredis.NewIntResult(0, errors.New("fake: redis caído"))
	}
	f.counts[key]++
	return goredis.NewIntResult(f.counts[key], nil)
}

func (f *fakeLimiterClient) Expire(ctx context.Context, key string, _ time.Duration) *goredis.BoolCmd {
	f.expireCalls[key]++
	return goredis.NewBoolResult(true, nil)
}

// expira simula el vencimiento del TTL de la ventana.
func (f *fakeLimiterClient) expira(key string) {
	delete(f.counts, key)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const limiterKey = "ratelimit:10.0.0.1:/api/auth/login"

func TestLimiter_PermiteHastaElMaximo(t *testing.T) {
	client := newFakeLimiterClient()
	limiter := redis.NewLimiter(client, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
		require.NoError(t, err)
		assert.True(t, ok, "las primeras max peticiones deben pasar")
	}

	ok, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
	require.NoError(t, err)
	assert.False(t, ok, "la petición max+1 dentro de la ventana debe bloquearse")
}

// El TTL se fija solo con el primer INCR de la ventana: renovarlo en cada
// petición dejaría el contador vivo indefinidamente y un cliente legítimo
// por debajo del ritmo límite quedaría bloqueado de forma permanente.
func TestLimiter_TTLSoloEnElPrimerIncremento(t *testing.T) {
	client := newFakeLimiterClient()
	limiter := redis.NewLimiter(client, 10, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, client.expireCalls[limiterKey],
		"EXPIRE debe ejecutarse una sola vez por ventana")
}

// Vencida la ventana, el contador arranca de cero y se fija un TTL nuevo.
func TestLimiter_VentanaNuevaTrasExpirar(t *testing.T) {
	client := newFakeLimiterClient()
	limiter := redis.NewLimiter(client, 2, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
		require.NoError(t, err)
	}
	client.expira(limiterKey)

	ok, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
	require.NoError(t, err)
	assert.True(t, ok, "tras expirar la ventana se vuelve a permitir")
	assert.Equal(t, 2, client.expireCalls[limiterKey],
		"la ventana nueva fija su propio TTL")
}

func TestLimiter_ErrorDeRedis(t *testing.T) {
	client := newFakeLimiterClient()
	client.failIncr = true
	limiter := redis.NewLimiter(client, 3, time.Minute)

	ok, err := limiter.Allow(context.Background(), "10.0.0.1:/api/auth/login")
	assert.Error(t, err)
	assert.False(t, ok)
}
