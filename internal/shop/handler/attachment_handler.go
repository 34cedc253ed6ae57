package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

// AttachmentHandler handles file uploads tied to shop records.
type AttachmentHandler struct {
	svc *service.AttachmentService
}

func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// Upload accepts a multipart file and attaches it to a record.
// POST /api/v1/attachments  (form fields: file, ref_type, ref_id)
func (h *AttachmentHandler) Upload(c *gin.Context) {
	refType := c.PostForm("ref_type")
	refID := c.PostForm("ref_id")
	if refType == "" || refID == "" {
		BadRequest(c, "ref_type and ref_id are required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "failed to open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	att, err := h.svc.Upload(c.Request.Context(), refType, refID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"),
		fileHeader.Size, file, GetUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, att)
}

// Download returns a short-lived presigned URL for the stored object.
// GET /api/v1/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	url, err := h.svc.PresignedURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"url": url})
}

// ListByRef
// GET /api/v1/attachments?ref_type=&ref_id=
func (h *AttachmentHandler) ListByRef(c *gin.Context) {
	refType := c.Query("ref_type")
	refID := c.Query("ref_id")
	if refType == "" || refID == "" {
		BadRequest(c, "ref_type and ref_id are required")
		return
	}

	items, err := h.svc.ListByRef(c.Request.Context(), refType, refID)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, items)
}

// Delete
// DELETE /api/v1/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
