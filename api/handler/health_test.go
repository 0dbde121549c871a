package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/owgcode2202/todoapp/internal/infrastructure/monitor"
)

func TestHealthReportsDegradedWithoutStores(t *testing.T) {
	mon := monitor.New(nil, nil, time.Minute, nil)
	h := NewHealthHandler(mon, nil, nil)

	ctx := getCtx("/health")
	h.Check(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusServiceUnavailable {
		t.Fatalf("status %d, want %d", got, fasthttp.StatusServiceUnavailable)
	}
	if body := string(ctx.Response.Body()); !strings.Contains(body, "DEGRADED") {
		t.Fatalf("body missing degraded marker: %s", body)
	}
}
