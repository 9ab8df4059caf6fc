package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RealtimeHub upgrades a request into a push session for one owner.
type RealtimeHub interface {
	HandleRequest(w http.ResponseWriter, r *http.Request, userID string) error
}

// RegisterRealtimeRoutes registers the websocket endpoint. The group must accept
// the access token as a query parameter since browsers cannot set headers on upgrade.
func RegisterRealtimeRoutes(rg *gin.RouterGroup, hub RealtimeHub) {
	rg.GET("/ws", func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		userID, ok := requireUserID(c, logger)
		if !ok {
			return
		}
		if err := hub.HandleRequest(c.Writer, c.Request, userID); err != nil {
			logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		}
	})
}
