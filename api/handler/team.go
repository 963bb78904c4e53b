package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/api/transport"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
	teamUC "github.com/fastygo/ministryflow/usecase/team"
)

type TeamHandler struct {
	baseHandler
	uc *teamUC.UseCase
}

func NewTeamHandler(uc *teamUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's teams
// @Tags teams
// @Router /api/v1/teams [get]
func (h *TeamHandler) ListTeams(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	teams, err := h.uc.ListTeams(stdCtx, session.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, teams, len(teams))
}

// @Summary Create team
// @Tags teams
// @Router /api/v1/teams [post]
func (h *TeamHandler) CreateTeam(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		return
	}
	var req transport.TeamRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	team, err := h.uc.CreateTeam(stdCtx, req.Name, session.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, team)
}

// @Summary Get team
// @Tags teams
// @Router /api/v1/teams/{teamID} [get]
func (h *TeamHandler) GetTeam(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	teamID, ok := h.pathParam(ctx, "teamID")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	team, err := h.uc.GetTeam(stdCtx, teamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, team)
}
