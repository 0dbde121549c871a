package handler

import (
	"html/template"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/internal/middleware"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
)

type PageHandler struct {
	baseHandler
	session  middleware.Options
	resolver middleware.UserResolver
}

func NewPageHandler(session middleware.Options, resolver middleware.UserResolver, adapter *httpcontext.Adapter, logger *zap.Logger, templates *template.Template) *PageHandler {
	return &PageHandler{
		baseHandler: newBaseHandler(adapter, logger, templates),
		session:     session,
		resolver:    resolver,
	}
}

// Landing sends authenticated visitors to their dashboard and shows the
// landing page to everyone else.
func (h *PageHandler) Landing(ctx *fasthttp.RequestCtx) {
	if user, err := middleware.ResolveUser(ctx, h.session, h.resolver); err == nil && user != nil {
		h.redirect(ctx, "/dashboard")
		return
	}
	h.render(ctx, http.StatusOK, "landing.html", nil)
}
