package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// RoleDefaultRoute vista por defecto de cada rol: a dónde redirigir a un
// usuario autenticado que intenta entrar a una vista que no le corresponde.
var RoleDefaultRoute = map[string]string{
	entity.RoleManager:    "/dashboard",
	entity.RoleAccountant: "/accountant-dashboard",
	entity.RoleAdmin:      "/dashboard",
}

// RequireRole devuelve un middleware que solo deja pasar los roles listados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - Sin rol en el contexto → 401 con redirect al login.
//   - Rol no permitido → 403 con redirect a la vista por defecto del rol,
//     nunca al login: un usuario autenticado no pierde la sesión por pedir
//     una vista ajena.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "UNAUTHORIZED",
				Message:  "rol no encontrado en el token",
				Redirect: LoginRoute,
			})
		}
		if _, ok := allowed[role]; !ok {
			redirect, ok := RoleDefaultRoute[role]
			if !ok {
				redirect = LoginRoute
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:     "FORBIDDEN",
				Message:  "el rol '" + role + "' no tiene acceso a este recurso",
				Redirect: redirect,
			})
		}
		return c.Next()
	}
}
