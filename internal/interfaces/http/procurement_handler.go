package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexuswms/nexus-api/internal/application/dto"
	"github.com/nexuswms/nexus-api/internal/application/procurement"
)

// ProcurementHandler maneja las requisiciones de compra (protegido).
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear requisición de compra
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "product_id, warehouse_id, quantity, priority"
// @Success      201   {object}  dto.RequisitionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), procurement.CreateInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Priority:    in.Priority,
		RequesterID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRequisitionDTO(req))
}

// Convert godoc
// @Summary      Convertir requisición en movimiento PURCHASE
// @Description  Idempotente: una requisición ya convertida devuelve su estado sin efecto.
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/convert [post]
func (h *ProcurementHandler) Convert(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	req, err := h.uc.Convert(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewRequisitionDTO(req))
}

// List godoc
// @Summary      Listar requisiciones
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.RequisitionDTO
// @Router       /api/requisitions [get]
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RequisitionDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewRequisitionDTO(r))
	}
	return c.JSON(out)
}
