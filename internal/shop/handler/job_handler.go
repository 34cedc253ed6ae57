package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

// JobHandler exposes job ticket operations.
type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// ListJobs
// GET /api/v1/jobs?status=&customer_id=&assigned_to=&search=
func (h *JobHandler) ListJobs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":      c.Query("status"),
		"customer_id": c.Query("customer_id"),
		"assigned_to": c.Query("assigned_to"),
		"search":      c.Query("search"),
	}

	jobs, total, err := h.svc.ListJobs(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}
	ListOK(c, jobs, page, pageSize, total)
}

// GetJob
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.svc.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, job)
}

// CreateJob
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	job, err := h.svc.CreateJob(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, job)
}

// UpdateStages toggles workflow stage flags on a job.
// PUT /api/v1/jobs/:id/stages
func (h *JobHandler) UpdateStages(c *gin.Context) {
	var req service.UpdateStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	job, err := h.svc.UpdateStages(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, job)
}

// CompleteJob
// POST /api/v1/jobs/:id/complete
func (h *JobHandler) CompleteJob(c *gin.Context) {
	job, err := h.svc.CompleteJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, job)
}

// CloseJob
// POST /api/v1/jobs/:id/close
func (h *JobHandler) CloseJob(c *gin.Context) {
	job, err := h.svc.CloseJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, job)
}

// DeleteJob
// DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.svc.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
