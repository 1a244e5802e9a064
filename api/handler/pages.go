package handler

import (
	"context"
	"path/filepath"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklight/backend/pkg/httpcontext"
	authUC "github.com/tasklight/backend/usecase/auth"
)

// PageHandler serves the three front-end pages with the reference redirect
// rule: the root page bounces logged-in visitors to the dashboard, and the
// dashboard bounces anonymous visitors back to the root.
type PageHandler struct {
	baseHandler
	sessions   *authUC.UseCase
	dir        string
	cookieName string
}

func NewPageHandler(sessions *authUC.UseCase, dir, cookieName string, adapter *httpcontext.Adapter, logger *zap.Logger) *PageHandler {
	if dir == "" {
		dir = "./web"
	}
	return &PageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		sessions:    sessions,
		dir:         dir,
		cookieName:  cookieName,
	}
}

func (h *PageHandler) Index(ctx *fasthttp.RequestCtx) {
	if h.hasSession(ctx) {
		ctx.Redirect("/dashboard", fasthttp.StatusFound)
		return
	}
	h.serve(ctx, "login.html")
}

func (h *PageHandler) Signup(ctx *fasthttp.RequestCtx) {
	h.serve(ctx, "signup.html")
}

func (h *PageHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	if !h.hasSession(ctx) {
		ctx.Redirect("/", fasthttp.StatusFound)
		return
	}
	h.serve(ctx, "dashboard.html")
}

func (h *PageHandler) serve(ctx *fasthttp.RequestCtx, page string) {
	fasthttp.ServeFile(ctx, filepath.Join(h.dir, page))
}

func (h *PageHandler) hasSession(ctx *fasthttp.RequestCtx) bool {
	token := string(ctx.Request.Header.Cookie(h.cookieName))
	if token == "" {
		return false
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()
	return h.resolve(stdCtx, token)
}

func (h *PageHandler) resolve(ctx context.Context, token string) bool {
	session, err := h.sessions.Resolve(ctx, token)
	return err == nil && session != nil
}
