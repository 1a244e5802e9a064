package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklight/backend/api/transport"
	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/internal/middleware"
	"github.com/tasklight/backend/pkg/httpcontext"
	accountUC "github.com/tasklight/backend/usecase/account"
	authUC "github.com/tasklight/backend/usecase/auth"
)

// CookieConfig controls how the session cookie is issued.
type CookieConfig struct {
	Name   string
	Secure bool
}

type SessionHandler struct {
	baseHandler
	accounts *accountUC.UseCase
	sessions *authUC.UseCase
	cookie   CookieConfig
}

func NewSessionHandler(accounts *accountUC.UseCase, sessions *authUC.UseCase, cookie CookieConfig, adapter *httpcontext.Adapter, logger *zap.Logger) *SessionHandler {
	if cookie.Name == "" {
		cookie.Name = "todo_session"
	}
	return &SessionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		accounts:    accounts,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// Login checks credentials and issues the session cookie.
func (h *SessionHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.CredentialsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrMissingCredentials)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.accounts.Authenticate(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	session, err := h.sessions.Start(stdCtx, user)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.issueCookie(ctx, session)
	h.respondJSON(ctx, http.StatusOK, transport.LoginResponse{
		Message:  "Login successful",
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Logout destroys the session and clears the cookie. A store failure reports
// 500 so the client knows the session may still be live.
func (h *SessionHandler) Logout(ctx *fasthttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(h.cookie.Name))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.sessions.Destroy(stdCtx, token); err != nil {
		h.logger.Error("session teardown failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.ErrorResponse{Error: "Could not log out"})
		return
	}

	h.clearCookie(ctx)
	h.respondJSON(ctx, http.StatusOK, transport.MessageResponse{Message: "Logout successful"})
}

// CurrentUser reports the identity bound to the caller's session.
func (h *SessionHandler) CurrentUser(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFromCtx(ctx)
	if session == nil {
		h.respondError(ctx, domain.ErrAuthRequired)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.UserResponse{
		UserID:   session.UserID,
		Username: session.Username,
	})
}

func (h *SessionHandler) issueCookie(ctx *fasthttp.RequestCtx, session *domain.Session) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue(session.ID)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetSecure(h.cookie.Secure)
	c.SetExpire(session.ExpiresAt)

	ctx.Response.Header.SetCookie(c)
}

func (h *SessionHandler) clearCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(fasthttp.CookieExpireDelete)

	ctx.Response.Header.SetCookie(c)
}
