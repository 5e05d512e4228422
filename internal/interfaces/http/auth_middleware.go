package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/pkg/jwt"
)

// Ruta a la que debe ir un cliente sin sesión.
const LoginRoute = "/login"

// Locals keys para los datos de sesión en Fiber.
const (
	LocalSessionID = "session_id"
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalRole      = "role"
)

// sessionChecker es el contrato mínimo que necesita el middleware para saber
// si la sesión del token sigue viva. Lo implementa *auth.UseCase; el uso de
// interfaz evita el import circular.
type sessionChecker interface {
	IsAuthenticated(ctx context.Context, sessionID string) bool
}

// AuthMiddleware valida el Bearer Token JWT, verifica que su sesión siga viva
// en el almacén y extrae la identidad a c.Locals.
//
// Un token firmado pero con sesión cerrada (logout) se rechaza: la sesión del
// almacén manda, no la expiración del JWT. Todo rechazo incluye Redirect al
// login para que el cliente sepa a dónde enviar al usuario.
func AuthMiddleware(jwtSecret string, sessions sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido", Redirect: LoginRoute})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>", Redirect: LoginRoute})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío", Redirect: LoginRoute})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado", Redirect: LoginRoute})
		}
		if !sessions.IsAuthenticated(c.Context(), claims.SessionID) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_CLOSED", Message: "la sesión ya no está activa", Redirect: LoginRoute})
		}
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// GetSessionID devuelve el SessionID del contexto (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string {
	return localString(c, LocalSessionID)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetUsername devuelve el Username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	return localString(c, LocalUsername)
}

// GetRole devuelve el Role del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
