package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

// Handlers is the shop handler set.
type Handlers struct {
	Vendor       *VendorHandler
	Customer     *CustomerHandler
	Part         *PartHandler
	Job          *JobHandler
	PO           *POHandler
	Notification *NotificationHandler
	Attachment   *AttachmentHandler
}

func NewHandlers(
	vendorSvc *service.VendorService,
	customerSvc *service.CustomerService,
	inventorySvc *service.InventoryService,
	jobSvc *service.JobService,
	purchasingSvc *service.PurchasingService,
	exportSvc *service.ExportService,
	notificationSvc *service.NotificationService,
	attachmentSvc *service.AttachmentService,
) *Handlers {
	return &Handlers{
		Vendor:       NewVendorHandler(vendorSvc),
		Customer:     NewCustomerHandler(customerSvc),
		Part:         NewPartHandler(inventorySvc),
		Job:          NewJobHandler(jobSvc),
		PO:           NewPOHandler(purchasingSvc, exportSvc),
		Notification: NewNotificationHandler(notificationSvc),
		Attachment:   NewAttachmentHandler(attachmentSvc),
	}
}

// === Response helpers ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail maps domain errors onto the response envelope: validation failures go
// back as 400 with the field named, over-receipt and blocked deletions as
// 409, missing records as 404.
func Fail(c *gin.Context, err error) {
	var vErr *entity.ValidationError
	var orErr *entity.OverReceiptError
	var prErr *entity.ProtectedReferenceError

	switch {
	case errors.As(err, &vErr):
		BadRequest(c, vErr.Error())
	case errors.As(err, &orErr):
		Conflict(c, orErr.Error())
	case errors.As(err, &prErr):
		Conflict(c, prErr.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func ListOK(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}
