package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/pkg/httpcontext"
	viewUC "github.com/fastygo/ministryflow/usecase/view"
)

type ViewHandler struct {
	baseHandler
	uc *viewUC.UseCase
}

func NewViewHandler(uc *viewUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Board dashboard counts
// @Tags views
// @Router /api/v1/boards/{boardID}/dashboard [get]
func (h *ViewHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	h.render(ctx, func(stdCtx context.Context, boardID string) (interface{}, error) {
		return h.uc.Dashboard(stdCtx, boardID)
	})
}

// @Summary Board kanban columns
// @Tags views
// @Router /api/v1/boards/{boardID}/kanban [get]
func (h *ViewHandler) Kanban(ctx *fasthttp.RequestCtx) {
	h.render(ctx, func(stdCtx context.Context, boardID string) (interface{}, error) {
		return h.uc.Kanban(stdCtx, boardID)
	})
}

// @Summary Board task table
// @Tags views
// @Router /api/v1/boards/{boardID}/table [get]
func (h *ViewHandler) Table(ctx *fasthttp.RequestCtx) {
	h.render(ctx, func(stdCtx context.Context, boardID string) (interface{}, error) {
		return h.uc.Table(stdCtx, boardID)
	})
}

// @Summary Board calendar for one month
// @Tags views
// @Param year query int false "defaults to the current year"
// @Param month query int false "1-12, defaults to the current month"
// @Router /api/v1/boards/{boardID}/calendar [get]
func (h *ViewHandler) Calendar(ctx *fasthttp.RequestCtx) {
	year := parseInt(string(ctx.QueryArgs().Peek("year")), 0)
	month := parseInt(string(ctx.QueryArgs().Peek("month")), 0)
	h.render(ctx, func(stdCtx context.Context, boardID string) (interface{}, error) {
		return h.uc.Calendar(stdCtx, boardID, year, time.Month(month))
	})
}

func (h *ViewHandler) render(ctx *fasthttp.RequestCtx, build func(context.Context, string) (interface{}, error)) {
	if h.session(ctx) == nil {
		return
	}
	boardID, ok := h.pathParam(ctx, "boardID")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload, err := build(stdCtx, boardID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
