package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/infrastructure/storage"
)

// UploadHandler sube adjuntos de órdenes de trabajo al almacenamiento
// (protegido). Con el almacenamiento deshabilitado responde 503.
type UploadHandler struct {
	store *storage.MinioStorage // nil si STORAGE_ENDPOINT no está configurado
}

// NewUploadHandler construye el handler.
func NewUploadHandler(store *storage.MinioStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload godoc
// @Summary      Subir adjunto de una orden de trabajo
// @Description  Devuelve el URI del adjunto; el cliente lo incluye luego en
// @Description  attachments del PUT de la orden (p.ej. junto al cierre).
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID de la orden"
// @Param        file  formData  file    true  "Archivo"
// @Success      201   {object}  map[string]string
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/attachments [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: "almacenamiento de adjuntos no configurado"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	uri, err := h.store.Upload(c.Context(), GetCompanyID(c), c.Params("id"),
		fileHeader.Filename, f, fileHeader.Size, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"uri": uri})
}
