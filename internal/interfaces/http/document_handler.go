package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// Header con el digest canónico del artefacto generado.
const HeaderArtifactDigest = "X-Artifact-Digest"

// DocumentHandler maneja documentos versionados, generación y registro.
type DocumentHandler struct {
	uc *document.UseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *document.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento
// @Description  Crea el documento en estado draft con su versión 1 (snapshot vacío). El autor sale del token.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDocumentRequest  true  "title, type, company_id, brand_id"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  query  string  false  "filtrar por empresa"
// @Param        limit       query  int     false  "tamaño de página (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Query("company_id"), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Elimina el documento y, en cascada, todas sus versiones.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddVersion godoc
// @Summary      Agregar versión
// @Description  Crea la versión N+1 con el snapshot recibido y mueve el puntero vigente. Las versiones anteriores no cambian.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del documento"
// @Param        body  body  dto.AddVersionRequest  true  "snapshot de contenido"
// @Success      201   {object}  dto.VersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/versions [post]
func (h *DocumentHandler) AddVersion(c *fiber.Ctx) error {
	var in dto.AddVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddVersion(c.Context(), c.Params("id"), GetUserID(c), in.Data)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVersions godoc
// @Summary      Versiones de un documento
// @Description  Instantánea finita, ascendente por número de versión.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.VersionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/versions [get]
func (h *DocumentHandler) ListVersions(c *fiber.Ctx) error {
	out, err := h.uc.ListVersions(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Description  Transiciones legales: draft→active, active→archived, draft→archived. Otra cosa responde 409.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.UpdateStatusRequest  true  "status destino"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Generar artefacto fechado
// @Description  Proyección pura de una versión concreta: no muta el documento ni sus versiones. El digest canónico viaja en X-Artifact-Digest.
// @Tags         documents
// @Accept       json
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id         path  string               true   "ID del documento"
// @Param        versionId  path  string               true   "ID de la versión"
// @Param        body       body  dto.GenerateRequest  false  "effective_date (2006-01-02), format (pdf|xml)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/versions/{versionId}/generate [post]
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	// El body es opcional: sin body se genera PDF con la fecha actual.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	var effectiveDate time.Time
	if in.EffectiveDate != "" {
		parsed, err := time.Parse("2006-01-02", in.EffectiveDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_date debe ser 2006-01-02"})
		}
		effectiveDate = parsed
	}

	artifact, err := h.uc.Generate(c.Context(), c.Params("id"), c.Params("versionId"), effectiveDate, in.Format)
	if err != nil {
		return errorJSON(c, err)
	}

	contentType := "application/pdf"
	if artifact.Format == entity.ArtifactXML {
		contentType = "application/xml"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+artifact.Filename+`"`)
	c.Set(HeaderArtifactDigest, artifact.Digest)
	return c.Send(artifact.Content)
}

// ExportRegister godoc
// @Summary      Exportar registro de documentos
// @Description  Libro XLSX con una fila por documento (título, tipo, estado, empresa, marca, cantidad de versiones).
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        company_id  query  string  false  "filtrar por empresa"
// @Success      200  {file}  file
// @Router       /api/documents/register [get]
func (h *DocumentHandler) ExportRegister(c *fiber.Ctx) error {
	filename, content, err := h.uc.ExportRegister(c.Query("company_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
