package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the analytics event for each tracked "METHOD route" pair.
// Routes not listed are not reported.
var routeEvents = map[string]string{
	"GET /api/v1/dashboard":           "dashboard_viewed",
	"POST /api/v1/accounts":           "account_created",
	"PUT /api/v1/accounts/:id":        "account_updated",
	"POST /api/v1/profiles":           "profile_created",
	"PUT /api/v1/profiles/:id":        "profile_updated",
	"POST /api/v1/transactions":       "transaction_recorded",
	"GET /api/v1/transactions":        "transactions_listed",
	"GET /api/v1/transactions/export": "transactions_exported",
	"POST /api/v1/budgets":            "budget_upserted",
	"PUT /api/v1/budgets/:id":         "budget_updated",
	"DELETE /api/v1/budgets/:id":      "budget_deleted",
	"GET /api/v1/budgets":             "budgets_viewed",
}

// analyticsEvent resolves the event name and resource for a matched route.
func analyticsEvent(method, fullPath string) (event string, resource string, ok bool) {
	event, ok = routeEvents[method+" "+fullPath]
	if !ok {
		return "", "", false
	}
	resource = strings.TrimPrefix(fullPath, "/api/v1/")
	resource, _, _ = strings.Cut(resource, "/")
	return event, resource, true
}

// PosthogMiddleware reports successful ledger, budget and account actions to PostHog.
// Only resource names, ids and filters are sent; amounts and descriptions stay out.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, resource, ok := analyticsEvent(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"resource":    resource,
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["entity_id"] = id
		}
		if format := c.Query("format"); format != "" {
			props["format"] = strings.ToLower(format)
		}
		if profile := c.Query("profile_id"); profile != "" {
			props["profile_filter"] = profile != "all"
		}
		posthogClient.Enqueue(userID, event, props)
	}
}

// PosthogEvent sends a one-off event for the authenticated user, e.g. a 2FA change.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = map[string]any{}
	}
	properties["path"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
