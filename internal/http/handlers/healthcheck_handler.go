// Healthcheck endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandlers serves the liveness/readiness probe.
type HealthHandlers struct {
	db *gorm.DB
}

// NewHealthHandlers constructs the health endpoint. db may be nil, in which
// case only liveness is reported.
func NewHealthHandlers(db *gorm.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// Healthcheck godoc
// @ID          healthcheck
// @Summary     Service health
// @Description Reports liveness and, when the database handle is available, pings it for readiness.
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     503  {object}  handlers.APIError "Database unreachable"
// @Router      /healthcheck [get]
func (h *HealthHandlers) Healthcheck(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			fail(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	ok(c, http.StatusOK, gin.H{"status": "OK"}, "Everything is OK")
}
