package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexuswms/nexus-api/internal/application/approvals"
)

// ApprovalsHandler maneja la cola de aprobaciones pendientes (protegido).
type ApprovalsHandler struct {
	queue *approvals.Queue
}

// NewApprovalsHandler construye el handler.
func NewApprovalsHandler(queue *approvals.Queue) *ApprovalsHandler {
	return &ApprovalsHandler{queue: queue}
}

// ListPending godoc
// @Summary      Cola de aprobaciones pendientes
// @Description  Todos los roles ven la cola completa; cada ítem viene anotado
//               con can_decide según la autoridad del rol consultante.
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingItemDTO
// @Router       /api/approvals [get]
func (h *ApprovalsHandler) ListPending(c *fiber.Ctx) error {
	items, err := h.queue.ListPending(c.Context(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
