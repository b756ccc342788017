// internal/web/router.go
package web

import (
	"net/http"

	"creditpath/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all API routes registered.
func NewRouter(h *Handler, log logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/letter-types", h.ListLetterTypes)

		users := api.Group("/users/:id")
		{
			users.GET("/audit", h.RunAudit)
			users.GET("/profile", h.GetProfile)
			users.POST("/profile", h.SaveProfile)
			users.PATCH("/profile", h.MergeProfile)
			users.POST("/disputes", h.SubmitDispute)
			users.POST("/disputes/bureaus", h.SubmitToAllBureaus)
			users.GET("/disputes", h.GetDisputeStatus)
			users.PUT("/disputes/:recordId/status", h.UpdateDisputeStatus)
		}
	}

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("Request failed", map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.FullPath(),
				"status": c.Writer.Status(),
			})
			return
		}
		log.Debug("Request handled", map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
	}
}
