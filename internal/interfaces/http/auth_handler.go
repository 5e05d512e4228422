package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/auth"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
)

// AuthHandler maneja login, logout y consulta de identidad.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica credenciales, crea la sesión y emite el JWT. Toda falla (incluido timeout) responde 401 sin detallar la causa.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Elimina la sesión del almacén. Idempotente: cerrar dos veces responde 200 las dos veces.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LogoutResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetSessionID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.LogoutResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Identidad de la sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := h.uc.CurrentUser(c.Context(), GetSessionID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_CLOSED", Message: "la sesión ya no está activa", Redirect: LoginRoute})
	}
	return c.JSON(dto.UserResponse{ID: identity.ID, Username: identity.Username, Role: identity.Role})
}
