package middleware

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/domain"
)

const currentUserKey = "current_user"

// UserResolver maps a session id to its user, typically the auth use case.
type UserResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// Options carries the cookie and signing settings shared by the middleware
// and the login handler.
type Options struct {
	Secret     string
	CookieName string
	Timeout    time.Duration
}

// SessionAuth guards protected routes. It verifies the signed session cookie,
// resolves the session to a user and stores the user on the request. Anonymous
// or invalid sessions are redirected to the login page instead of executing.
func SessionAuth(opts Options, resolver UserResolver, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			user, err := ResolveUser(ctx, opts, resolver)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) && !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					logger.Warn("session resolution failed", zap.Error(err))
				}
				ctx.Redirect("/login", fasthttp.StatusSeeOther)
				return
			}

			ctx.SetUserValue(currentUserKey, user)
			next(ctx)
		}
	}
}

// ResolveUser inspects the session cookie and returns the authenticated user,
// or a domain error when the request is anonymous. Used by the middleware and
// by public pages that only branch on authentication state.
func ResolveUser(ctx *fasthttp.RequestCtx, opts Options, resolver UserResolver) (*domain.User, error) {
	sessionID, err := SessionIDFromRequest(ctx, opts.Secret, opts.CookieName)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return resolver.CurrentUser(stdCtx, sessionID)
}

// SessionIDFromRequest extracts and verifies the signed session token cookie.
func SessionIDFromRequest(ctx *fasthttp.RequestCtx, secret, cookieName string) (string, error) {
	tokenString := string(ctx.Request.Header.Cookie(cookieName))
	if tokenString == "" {
		return "", domain.ErrSessionNotFound
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrSessionNotFound
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrSessionNotFound
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", domain.ErrSessionNotFound
	}
	return sessionID, nil
}

// SignSessionToken wraps the session id in an HS256-signed token for the cookie.
func SignSessionToken(secret string, session *domain.Session) (string, error) {
	if session == nil {
		return "", domain.ErrInvalidPayload
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": session.ID,
		"exp": jwt.NewNumericDate(session.ExpiresAt),
	})
	return token.SignedString([]byte(secret))
}

// UserFromRequest returns the user stored by SessionAuth, nil when absent.
func UserFromRequest(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(currentUserKey).(*domain.User)
	return user
}

// SetUser stores the user on the request the way SessionAuth does. Exposed for tests.
func SetUser(ctx *fasthttp.RequestCtx, user *domain.User) {
	ctx.SetUserValue(currentUserKey, user)
}
