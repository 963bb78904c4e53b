package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/api/transport"
	"github.com/fastygo/ministryflow/internal/infrastructure/monitor"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"store": map[string]interface{}{
				"enabled": status.StoreEnabled,
				"online":  status.Store,
				"tasks":   status.StoreTasks,
				"open_tx": status.StoreOpenTx,
			},
			"postgresql": map[string]interface{}{
				"enabled": status.PostgresEnabled,
				"online":  status.PostgreSQL,
			},
			"redis": map[string]interface{}{
				"enabled": status.RedisEnabled,
				"online":  status.Redis,
			},
		},
		"last_check": status.LastCheck,
	}

	if status.Healthy() {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
