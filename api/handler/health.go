package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/api/transport"
	"github.com/owgcode2202/todoapp/internal/infrastructure/monitor"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger, nil),
		monitor:     mon,
	}
}

// Check reports datastore health as observed by the background monitor.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
		},
	}

	if status.PostgreSQL && status.Redis {
		h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(payload))
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", payload))
}
