package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/api/transport"
	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/internal/middleware"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
	authUC "github.com/owgcode2202/todoapp/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc      *authUC.UseCase
	session middleware.Options
}

func NewAuthHandler(uc *authUC.UseCase, session middleware.Options, adapter *httpcontext.Adapter, logger *zap.Logger, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger, templates),
		uc:          uc,
		session:     session,
	}
}

type authPageData struct {
	Flash string
}

// RegisterPage renders the account creation form.
func (h *AuthHandler) RegisterPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, http.StatusOK, "register.html", authPageData{Flash: takeFlash(ctx)})
}

// Register creates an account from the submitted form. Conflicts and missing
// fields re-render the form with a message; success redirects to the landing page.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	form := transport.ParseRegisterForm(ctx.PostArgs())
	if !form.Valid() {
		h.render(ctx, http.StatusBadRequest, "register.html", authPageData{Flash: "All fields are required."})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Register(stdCtx, form.Username, form.Email, form.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			h.render(ctx, http.StatusConflict, "register.html", authPageData{Flash: "Username already exists!"})
		case errors.Is(err, domain.ErrEmailTaken):
			h.render(ctx, http.StatusConflict, "register.html", authPageData{Flash: "Email already exists!"})
		case domain.IsDomainError(err, domain.ErrCodeConflict):
			h.render(ctx, http.StatusConflict, "register.html", authPageData{Flash: "Username or email already exists!"})
		default:
			h.logger.Error("registration failed", zap.Error(err))
			h.render(ctx, http.StatusInternalServerError, "register.html", authPageData{Flash: "Registration failed. Please try again."})
		}
		return
	}

	h.redirect(ctx, "/")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, http.StatusOK, "login.html", authPageData{Flash: takeFlash(ctx)})
}

// Login authenticates the submitted credentials and opens a session. Every
// failed attempt gets the same message regardless of cause.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	form := transport.ParseLoginForm(ctx.PostArgs())
	if !form.Valid() {
		h.render(ctx, http.StatusBadRequest, "login.html", authPageData{Flash: "Invalid email or password"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, session, err := h.uc.Login(stdCtx, form.Email, form.Password)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			h.render(ctx, http.StatusUnauthorized, "login.html", authPageData{Flash: "Invalid email or password"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		h.failText(ctx, "Something went wrong. Please try again.")
		return
	}

	token, err := middleware.SignSessionToken(h.session.Secret, session)
	if err != nil {
		h.logger.Error("session token signing failed", zap.Error(err))
		h.failText(ctx, "Something went wrong. Please try again.")
		return
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(h.session.CookieName)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(session.ExpiresAt)
	ctx.Response.Header.SetCookie(c)

	h.redirect(ctx, "/dashboard")
}

// Logout revokes the caller's session and clears the cookie.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID, err := middleware.SessionIDFromRequest(ctx, h.session.Secret, h.session.CookieName)
	if err == nil {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		if err := h.uc.Logout(stdCtx, sessionID); err != nil {
			h.logger.Warn("session revocation failed", zap.Error(err))
		}
	}

	ctx.Response.Header.DelClientCookie(h.session.CookieName)
	h.redirect(ctx, "/login")
}
