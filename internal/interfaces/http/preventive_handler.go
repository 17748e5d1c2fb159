package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/application/maintenance"
)

// PreventiveHandler maneja las tareas de mantenimiento preventivo (protegido).
type PreventiveHandler struct {
	uc *maintenance.UseCase
}

// NewPreventiveHandler construye el handler.
func NewPreventiveHandler(uc *maintenance.UseCase) *PreventiveHandler {
	return &PreventiveHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea preventiva recurrente
// @Tags         preventive
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePreventiveTaskRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.PreventiveTaskResponse
// @Router       /api/preventive-tasks [post]
func (h *PreventiveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePreventiveTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Complete godoc
// @Summary      Registrar ejecución de una tarea y recalcular el vencimiento
// @Tags         preventive
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.CompleteTaskResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/preventive-tasks/{id}/complete [post]
func (h *PreventiveHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Pausar o reactivar una tarea
// @Tags         preventive
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Success      200   {object}  dto.PreventiveTaskResponse
// @Router       /api/preventive-tasks/{id}/status [put]
func (h *PreventiveHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStatus(c.Context(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tareas preventivas
// @Tags         preventive
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño"  default(20)
// @Success      200  {object}  dto.PreventiveTaskListResponse
// @Router       /api/preventive-tasks [get]
func (h *PreventiveHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
