package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/api/transport"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
	boardUC "github.com/fastygo/ministryflow/usecase/board"
)

type BoardHandler struct {
	baseHandler
	uc *boardUC.UseCase
}

func NewBoardHandler(uc *boardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List a team's boards with task counts
// @Tags boards
// @Router /api/v1/teams/{teamID}/boards [get]
func (h *BoardHandler) ListBoards(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	teamID, ok := h.pathParam(ctx, "teamID")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	boards, err := h.uc.ListBoardSummaries(stdCtx, teamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, boards, len(boards))
}

// @Summary Create board
// @Tags boards
// @Router /api/v1/teams/{teamID}/boards [post]
func (h *BoardHandler) CreateBoard(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	teamID, ok := h.pathParam(ctx, "teamID")
	if !ok {
		return
	}
	var req transport.BoardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := h.uc.CreateBoard(stdCtx, req.Name, teamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, board)
}

// @Summary Delete a board and its tasks
// @Description Requires ?confirm=true.
// @Tags boards
// @Router /api/v1/boards/{boardID} [delete]
func (h *BoardHandler) DeleteBoard(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	boardID, ok := h.pathParam(ctx, "boardID")
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(string(ctx.QueryArgs().Peek("confirm")))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.DeleteBoard(stdCtx, boardID, confirmed)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.DeleteBoardResponse{BoardID: boardID, TasksRemoved: removed})
}
