package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/application/usecase"
)

// CompanyHandler maneja empresas y sus datos de referencia anidados
// (marcas y cuentas bancarias).
type CompanyHandler struct {
	companyUC *usecase.CompanyUseCase
	brandUC   *usecase.BrandUseCase
	bankUC    *usecase.BankAccountUseCase
}

// NewCompanyHandler construye el handler de datos de referencia.
func NewCompanyHandler(companyUC *usecase.CompanyUseCase, brandUC *usecase.BrandUseCase, bankUC *usecase.BankAccountUseCase) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC, brandUC: brandUC, bankUC: bankUC}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "name, tax_id"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.companyUC.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "tamaño de página (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.companyUC.List(page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.companyUC.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "datos nuevos"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.companyUC.Update(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa
// @Description  Se rechaza con 409 mientras existan marcas, cuentas o documentos que la referencien.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la empresa"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.companyUC.Delete(c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// CreateBrand godoc
// @Summary      Crear marca de una empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la empresa"
// @Param        body  body  dto.CreateBrandRequest  true  "name"
// @Success      201   {object}  dto.BrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/brands [post]
func (h *CompanyHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.brandUC.Create(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBrands godoc
// @Summary      Marcas de una empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.BrandListResponse
// @Router       /api/companies/{id}/brands [get]
func (h *CompanyHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.brandUC.ListByCompany(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Eliminar marca
// @Description  Se rechaza con 409 mientras existan productos o documentos que la referencien.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        brandId  path  string  true  "ID de la marca"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brands/{brandId} [delete]
func (h *CompanyHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.brandUC.Delete(c.Params("brandId")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Cuentas bancarias ─────────────────────────────────────────────────────────

// CreateBankAccount godoc
// @Summary      Crear cuenta bancaria de una empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la empresa"
// @Param        body  body  dto.CreateBankAccountRequest  true  "account_number, bank_name, routing_code"
// @Success      201   {object}  dto.BankAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/bank-accounts [post]
func (h *CompanyHandler) CreateBankAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.bankUC.Create(c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBankAccounts godoc
// @Summary      Cuentas bancarias de una empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.BankAccountListResponse
// @Router       /api/companies/{id}/bank-accounts [get]
func (h *CompanyHandler) ListBankAccounts(c *fiber.Ctx) error {
	out, err := h.bankUC.ListByCompany(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// DeleteBankAccount godoc
// @Summary      Eliminar cuenta bancaria
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        accountId  path  string  true  "ID de la cuenta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bank-accounts/{accountId} [delete]
func (h *CompanyHandler) DeleteBankAccount(c *fiber.Ctx) error {
	if err := h.bankUC.Delete(c.Params("accountId")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
