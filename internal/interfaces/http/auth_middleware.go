package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/pkg/jwt"
)

// Local key para el Principal en Fiber.
const LocalPrincipal = "principal"

// AuthMiddleware valida el JWT y deja el Principal en c.Locals.
// El token se acepta por header Authorization (Bearer) o por cookie "token",
// pensado para el front móvil que guarda sesión en cookie.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, domain.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		return c.Next()
	}
}

// extractToken busca el token primero en Authorization y luego en la cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies("token")
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
// Devuelve el zero value si no hay sesión.
func GetPrincipal(c *fiber.Ctx) domain.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return domain.Principal{}
	}
	p, _ := v.(domain.Principal)
	return p
}

// RequireRole exige que el Principal tenga el rol indicado.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.IsZero() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if p.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente"})
		}
		return c.Next()
	}
}
