package handler

import (
	"net/url"

	"github.com/valyala/fasthttp"
)

const flashCookie = "todo_flash"

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(ctx *fasthttp.RequestCtx, message string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(flashCookie)
	c.SetValue(url.QueryEscape(message))
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetMaxAge(60)
	ctx.Response.Header.SetCookie(c)
}

// takeFlash returns the pending flash message, if any, and clears it.
func takeFlash(ctx *fasthttp.RequestCtx) string {
	raw := string(ctx.Request.Header.Cookie(flashCookie))
	if raw == "" {
		return ""
	}
	ctx.Response.Header.DelClientCookie(flashCookie)

	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
