package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

// POHandler exposes the purchase-order lifecycle and the receiving ledger.
type POHandler struct {
	svc       *service.PurchasingService
	exportSvc *service.ExportService
}

func NewPOHandler(svc *service.PurchasingService, exportSvc *service.ExportService) *POHandler {
	return &POHandler{svc: svc, exportSvc: exportSvc}
}

// ListPOs
// GET /api/v1/purchase-orders?status=&vendor_id=&search=&urgent=
func (h *POHandler) ListPOs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.POListParams{
		Status:   c.Query("status"),
		VendorID: c.Query("vendor_id"),
		Search:   c.Query("search"),
		Urgent:   c.Query("urgent") == "true",
		Page:     page,
		PageSize: pageSize,
	}

	orders, total, err := h.svc.ListPOs(c.Request.Context(), params)
	if err != nil {
		Fail(c, err)
		return
	}
	ListOK(c, orders, page, pageSize, total)
}

// GetPO
// GET /api/v1/purchase-orders/:id
func (h *POHandler) GetPO(c *gin.Context) {
	po, err := h.svc.GetPO(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, po)
}

// CreatePO
// POST /api/v1/purchase-orders
func (h *POHandler) CreatePO(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	po, err := h.svc.CreatePO(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, po)
}

// DeletePO
// DELETE /api/v1/purchase-orders/:id
func (h *POHandler) DeletePO(c *gin.Context) {
	if err := h.svc.DeletePO(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// SubmitPO
// POST /api/v1/purchase-orders/:id/submit
func (h *POHandler) SubmitPO(c *gin.Context) {
	po, err := h.svc.SubmitPO(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, po)
}

// ClosePO
// POST /api/v1/purchase-orders/:id/close
func (h *POHandler) ClosePO(c *gin.Context) {
	po, err := h.svc.ClosePO(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, po)
}

// CancelPO
// POST /api/v1/purchase-orders/:id/cancel
func (h *POHandler) CancelPO(c *gin.Context) {
	po, err := h.svc.CancelPO(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, po)
}

// SetShipTo copies a customer address onto the order for drop shipping.
// POST /api/v1/purchase-orders/:id/ship-to
func (h *POHandler) SetShipTo(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	po, err := h.svc.SetShipToFromCustomer(c.Request.Context(), c.Param("id"), req.CustomerID)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, po)
}

// AddItem
// POST /api/v1/purchase-orders/:id/items
func (h *POHandler) AddItem(c *gin.Context) {
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}

// UpdateItem edits a line item while its order is still a draft.
// PUT /api/v1/po-items/:itemId
func (h *POHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("itemId"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, item)
}

// ReceiveItem records one receiving event against a line item.
// POST /api/v1/po-items/:itemId/receive
func (h *POHandler) ReceiveItem(c *gin.Context) {
	var req service.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.ReceiveItem(c.Request.Context(), c.Param("itemId"), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, item)
}

// CancelRemaining
// POST /api/v1/po-items/:itemId/cancel-remaining
func (h *POHandler) CancelRemaining(c *gin.Context) {
	var req struct {
		Quantity decimal.Decimal `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.CancelRemaining(c.Request.Context(), c.Param("itemId"), req.Quantity)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, item)
}

// MarkBackordered
// POST /api/v1/po-items/:itemId/backorder
func (h *POHandler) MarkBackordered(c *gin.Context) {
	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.MarkBackordered(c.Request.Context(), c.Param("itemId"), req.Quantity)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, item)
}

// ListReceivings returns a line item's receiving ledger.
// GET /api/v1/po-items/:itemId/receivings
func (h *POHandler) ListReceivings(c *gin.Context) {
	recs, err := h.svc.ListReceivings(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, recs)
}

// UpdateReceiving is the administrative correction path.
// PUT /api/v1/receivings/:id
func (h *POHandler) UpdateReceiving(c *gin.Context) {
	var req service.UpdateReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	rec, err := h.svc.UpdateReceiving(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// DeleteReceiving removes one ledger record and re-derives quantities.
// DELETE /api/v1/receivings/:id
func (h *POHandler) DeleteReceiving(c *gin.Context) {
	if err := h.svc.DeleteReceiving(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// ExportPOs streams the current order list as an Excel workbook.
// GET /api/v1/purchase-orders/export
func (h *POHandler) ExportPOs(c *gin.Context) {
	params := repository.POListParams{
		Status:   c.Query("status"),
		VendorID: c.Query("vendor_id"),
		Search:   c.Query("search"),
	}

	f, name, err := h.exportSvc.ExportPOs(c.Request.Context(), params)
	if err != nil {
		Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
