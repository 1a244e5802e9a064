package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklight/backend/api/transport"
	"github.com/tasklight/backend/domain"
	authUC "github.com/tasklight/backend/usecase/auth"
)

const sessionKey = "auth_session"

// resolveTimeout bounds the session lookup, which may hit Redis.
const resolveTimeout = 3 * time.Second

// SessionAuth gates protected routes on a valid session cookie. The resolved
// session is attached to the request for handlers to read via SessionFromCtx.
func SessionAuth(sessions *authUC.UseCase, cookieName string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := string(ctx.Request.Header.Cookie(cookieName))
			if token == "" {
				reject(ctx)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
			defer cancel()

			session, err := sessions.Resolve(stdCtx, token)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					logger.Warn("session resolution failed", zap.Error(err))
				}
				reject(ctx)
				return
			}

			ctx.SetUserValue(sessionKey, session)
			next(ctx)
		}
	}
}

// SessionFromCtx returns the session attached by SessionAuth, or nil on an
// unguarded route.
func SessionFromCtx(ctx *fasthttp.RequestCtx) *domain.Session {
	session, _ := ctx.UserValue(sessionKey).(*domain.Session)
	return session
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.ErrorResponse{Error: domain.ErrAuthRequired.Message})
	ctx.SetBody(body)
}
