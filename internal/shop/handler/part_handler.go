package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

// PartHandler exposes the part catalog and customer engines.
type PartHandler struct {
	svc *service.InventoryService
}

func NewPartHandler(svc *service.InventoryService) *PartHandler {
	return &PartHandler{svc: svc}
}

// ListParts
// GET /api/v1/parts?category=&search=
func (h *PartHandler) ListParts(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"category": c.Query("category"),
		"search":   c.Query("search"),
	}

	parts, total, err := h.svc.ListParts(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}
	ListOK(c, parts, page, pageSize, total)
}

// GetPart
// GET /api/v1/parts/:id
func (h *PartHandler) GetPart(c *gin.Context) {
	part, err := h.svc.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, part)
}

// CreatePart
// POST /api/v1/parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	var req service.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	part, err := h.svc.CreatePart(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, part)
}

// UpdatePart
// PUT /api/v1/parts/:id
func (h *PartHandler) UpdatePart(c *gin.Context) {
	var req service.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	part, err := h.svc.UpdatePart(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, part)
}

// AdjustStock applies a manual on-hand correction.
// POST /api/v1/parts/:id/adjust
func (h *PartHandler) AdjustStock(c *gin.Context) {
	var req struct {
		Delta decimal.Decimal `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	part, err := h.svc.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, part)
}

// ListBelowReorder
// GET /api/v1/parts/below-reorder
func (h *PartHandler) ListBelowReorder(c *gin.Context) {
	parts, err := h.svc.ListBelowReorder(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, parts)
}

// DeletePart is blocked while PO line items reference the part.
// DELETE /api/v1/parts/:id
func (h *PartHandler) DeletePart(c *gin.Context) {
	if err := h.svc.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// CreateEngine
// POST /api/v1/engines
func (h *PartHandler) CreateEngine(c *gin.Context) {
	var req service.EngineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	engine, err := h.svc.CreateEngine(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, engine)
}

// ListEngines lists a customer's engines.
// GET /api/v1/engines?customer_id=...
func (h *PartHandler) ListEngines(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		BadRequest(c, "customer_id is required")
		return
	}
	engines, err := h.svc.ListEnginesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, engines)
}

// GetEngine
// GET /api/v1/engines/:id
func (h *PartHandler) GetEngine(c *gin.Context) {
	engine, err := h.svc.GetEngine(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, engine)
}

// DeleteEngine
// DELETE /api/v1/engines/:id
func (h *PartHandler) DeleteEngine(c *gin.Context) {
	if err := h.svc.DeleteEngine(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
