package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/api/transport"
	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
	boardUC "github.com/fastygo/ministryflow/usecase/board"
	profileUC "github.com/fastygo/ministryflow/usecase/profile"
	taskUC "github.com/fastygo/ministryflow/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc       *taskUC.UseCase
	boards   *boardUC.UseCase
	profiles *profileUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, boards *boardUC.UseCase, profiles *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		boards:      boards,
		profiles:    profiles,
	}
}

// @Summary List a board's tasks
// @Tags tasks
// @Router /api/v1/boards/{boardID}/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	boardID, ok := h.pathParam(ctx, "boardID")
	if !ok {
		return
	}
	status := domain.Status(ctx.QueryArgs().Peek("status"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, boardID, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, tasks, len(tasks))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/boards/{boardID}/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	boardID, ok := h.pathParam(ctx, "boardID")
	if !ok {
		return
	}
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}
	due, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	teamID, err := h.teamOf(stdCtx, boardID, req.TeamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	task, err := h.uc.CreateTask(stdCtx, boardID, teamID, taskUC.Input{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
		DueDate:     due,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, task)
}

// teamOf prefers the board's team. Board references are advisory, so an
// unknown board falls back to the team named in the request.
func (h *TaskHandler) teamOf(ctx context.Context, boardID, requested string) (string, error) {
	board, err := h.boards.GetBoard(ctx, boardID)
	if errors.Is(err, domain.ErrBoardNotFound) {
		return strings.TrimSpace(requested), nil
	}
	if err != nil {
		return "", err
	}
	return board.TeamID, nil
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	id, ok := h.pathParam(ctx, "id")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Update task fields
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	id, ok := h.pathParam(ctx, "id")
	if !ok {
		return
	}
	var req transport.TaskUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}
	patch, err := taskPatch(req)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.UpdateTask(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Move task to another column
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [put]
func (h *TaskHandler) MoveTask(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	id, ok := h.pathParam(ctx, "id")
	if !ok {
		return
	}
	var req transport.MoveTaskRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.MoveTask(stdCtx, id, domain.Status(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	if h.session(ctx) == nil {
		return
	}
	id, ok := h.pathParam(ctx, "id")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Comment on a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(ctx *fasthttp.RequestCtx) {
	session := h.session(ctx)
	if session == nil {
		return
	}
	id, ok := h.pathParam(ctx, "id")
	if !ok {
		return
	}
	var req transport.CommentRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	author, err := h.profiles.GetProfile(stdCtx, session)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	comment, err := h.uc.AddComment(stdCtx, id, req.Text, author.DisplayName())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}

func taskPatch(req transport.TaskUpdateRequest) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := domain.ParseDueDate(*req.DueDate)
		if err != nil {
			return patch, err
		}
		patch.DueDate = due
		patch.ClearDueDate = due == nil
	}
	return patch, nil
}
