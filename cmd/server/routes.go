package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stephenrocksolid/shopmgr/internal/config"
	"github.com/stephenrocksolid/shopmgr/internal/middleware"
	"github.com/stephenrocksolid/shopmgr/internal/shop/handler"
)

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		vendors := authorized.Group("/vendors")
		{
			vendors.GET("", h.Vendor.ListVendors)
			vendors.GET("/:id", h.Vendor.GetVendor)
			vendors.POST("", h.Vendor.CreateVendor)
			vendors.PUT("/:id", h.Vendor.UpdateVendor)
			vendors.POST("/:id/deactivate", h.Vendor.DeactivateVendor)
			vendors.DELETE("/:id", h.Vendor.DeleteVendor)
		}

		customers := authorized.Group("/customers")
		{
			customers.GET("", h.Customer.ListCustomers)
			customers.GET("/:id", h.Customer.GetCustomer)
			customers.POST("", h.Customer.CreateCustomer)
			customers.PUT("/:id", h.Customer.UpdateCustomer)
			customers.DELETE("/:id", h.Customer.DeleteCustomer)
		}

		parts := authorized.Group("/parts")
		{
			parts.GET("", h.Part.ListParts)
			parts.GET("/below-reorder", h.Part.ListBelowReorder)
			parts.GET("/:id", h.Part.GetPart)
			parts.POST("", h.Part.CreatePart)
			parts.PUT("/:id", h.Part.UpdatePart)
			parts.POST("/:id/adjust", h.Part.AdjustStock)
			parts.DELETE("/:id", h.Part.DeletePart)
		}

		engines := authorized.Group("/engines")
		{
			engines.GET("", h.Part.ListEngines)
			engines.GET("/:id", h.Part.GetEngine)
			engines.POST("", h.Part.CreateEngine)
			engines.DELETE("/:id", h.Part.DeleteEngine)
		}

		jobs := authorized.Group("/jobs")
		{
			jobs.GET("", h.Job.ListJobs)
			jobs.GET("/:id", h.Job.GetJob)
			jobs.POST("", h.Job.CreateJob)
			jobs.PUT("/:id/stages", h.Job.UpdateStages)
			jobs.POST("/:id/complete", h.Job.CompleteJob)
			jobs.POST("/:id/close", h.Job.CloseJob)
			jobs.DELETE("/:id", h.Job.DeleteJob)
		}

		pos := authorized.Group("/purchase-orders")
		{
			pos.GET("", h.PO.ListPOs)
			pos.GET("/export", h.PO.ExportPOs)
			pos.GET("/:id", h.PO.GetPO)
			pos.POST("", h.PO.CreatePO)
			pos.DELETE("/:id", h.PO.DeletePO)
			pos.POST("/:id/submit", h.PO.SubmitPO)
			pos.POST("/:id/close", h.PO.ClosePO)
			pos.POST("/:id/cancel", h.PO.CancelPO)
			pos.PUT("/:id/ship-to", h.PO.SetShipTo)
			pos.POST("/:id/items", h.PO.AddItem)
		}

		poItems := authorized.Group("/po-items")
		{
			poItems.PUT("/:itemId", h.PO.UpdateItem)
			poItems.POST("/:itemId/receive", h.PO.ReceiveItem)
			poItems.POST("/:itemId/cancel-remaining", h.PO.CancelRemaining)
			poItems.POST("/:itemId/backorder", h.PO.MarkBackordered)
			poItems.GET("/:itemId/receivings", h.PO.ListReceivings)
		}

		// Ledger corrections rewrite history; purchasing staff only.
		receivings := authorized.Group("/receivings", middleware.RequireRole("purchasing"))
		{
			receivings.PUT("/:id", h.PO.UpdateReceiving)
			receivings.DELETE("/:id", h.PO.DeleteReceiving)
		}

		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.POST("/:id/read", h.Notification.MarkRead)
			notifications.POST("/read-all", h.Notification.MarkAllRead)
		}

		attachments := authorized.Group("/attachments")
		{
			attachments.GET("", h.Attachment.ListByRef)
			attachments.POST("", h.Attachment.Upload)
			attachments.GET("/:id/download", h.Attachment.Download)
			attachments.DELETE("/:id", h.Attachment.Delete)
		}
	}
}
