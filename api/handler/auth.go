package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/api/transport"
	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/middleware"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
	authUC "github.com/fastygo/ministryflow/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	tokens     *middleware.TokenIssuer
	defaultTTL time.Duration
}

func NewAuthHandler(uc *authUC.UseCase, tokens *middleware.TokenIssuer, adapter *httpcontext.Adapter, logger *zap.Logger, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		tokens:      tokens,
		defaultTTL:  ttl,
	}
}

// @Summary Create an account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Register(stdCtx, authUC.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSession(ctx, http.StatusCreated, user, session)
}

// @Summary Sign in
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.AuthLoginRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respondInvalid(ctx, "email and password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSession(ctx, http.StatusOK, user, session)
}

// @Summary Refresh the current session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	current := h.session(ctx)
	if current == nil {
		return
	}
	var req transport.RefreshRequest
	if len(ctx.PostBody()) > 0 && !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.RefreshSession(stdCtx, current.ID, h.ttlFromRequest(req.TTL))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSession(ctx, http.StatusOK, nil, session)
}

// @Summary Sign out of the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, session); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *AuthHandler) respondSession(ctx *fasthttp.RequestCtx, status int, user *domain.User, session *domain.Session) {
	token, err := h.tokens.Issue(session)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	resp := transport.AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}
	if user != nil {
		resp.User = user
	}
	h.respondSuccess(ctx, status, resp)
}

func (h *AuthHandler) ttlFromRequest(ttlSeconds int) time.Duration {
	if ttlSeconds <= 0 {
		return h.defaultTTL
	}
	return time.Duration(ttlSeconds) * time.Second
}
