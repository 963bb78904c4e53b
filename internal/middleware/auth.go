package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
)

const sessionKey = "session"

// SessionResolver looks up a live session by id.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
}

// JWTAuth rejects requests without a valid token and attaches the acting
// session to the request.
func JWTAuth(tokens *TokenIssuer, sessions SessionResolver, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			session, err := sessions.GetSession(context.Background(), claims.SessionID)
			if err != nil || session.UserID != claims.UserID {
				logger.Warn("session rejected", zap.String("session_id", claims.SessionID), zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue(sessionKey, session)
			ctx.Request.Header.Set("X-User-ID", session.UserID)

			next(ctx)
		}
	}
}

// SessionFrom returns the session attached by JWTAuth, or nil.
func SessionFrom(ctx *fasthttp.RequestCtx) *domain.Session {
	session, _ := ctx.UserValue(sessionKey).(*domain.Session)
	return session
}

// WithSession attaches a session to the request.
func WithSession(ctx *fasthttp.RequestCtx, session *domain.Session) {
	ctx.SetUserValue(sessionKey, session)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
