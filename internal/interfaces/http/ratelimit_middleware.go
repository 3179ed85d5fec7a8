package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
)

// AuthLimiter puerto del limitador de peticiones (implementado sobre Redis).
type AuthLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware limita peticiones por IP sobre los endpoints de auth.
// limiter nil deshabilita el límite (app sin Redis).
func RateLimitMiddleware(limiter AuthLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		ok, err := limiter.Allow(c.UserContext(), c.IP()+":"+c.Path())
		if err != nil {
			// Redis caído no debe tumbar el login: se deja pasar y se registra.
			log.Warn().Err(err).Msg("rate limiter no disponible")
			return c.Next()
		}
		if !ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
