package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/api/transport"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
)

type baseHandler struct {
	adapter   *httpcontext.Adapter
	logger    *zap.Logger
	templates *template.Template
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger, templates *template.Template) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, templates: templates}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// render executes the named page template into the response body.
func (h baseHandler) render(ctx *fasthttp.RequestCtx, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		h.failText(ctx, "Something went wrong. Please try again.")
		return
	}
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBody(buf.Bytes())
}

func (h baseHandler) redirect(ctx *fasthttp.RequestCtx, location string) {
	ctx.Redirect(location, fasthttp.StatusSeeOther)
}

// failText is the terminal response for unexpected persistence failures:
// generic text, no redirect, nothing retried.
func (h baseHandler) failText(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(http.StatusInternalServerError)
	ctx.SetBodyString(message)
}

func (h baseHandler) notFound(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(http.StatusNotFound)
	ctx.SetBodyString("404 Not Found")
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
