package handler

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/api/transport"
	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/internal/middleware"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
	taskUC "github.com/owgcode2202/todoapp/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, templates *template.Template) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger, templates),
		uc:          uc,
	}
}

type dashboardData struct {
	Username string
	Tasks    []domain.Task
	Flash    string
}

type updateData struct {
	Task *domain.Task
}

// Dashboard lists the caller's tasks, oldest first.
func (h *TaskHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListMine(stdCtx, user.ID)
	if err != nil {
		h.logger.Error("task listing failed", zap.Int64("user_id", user.ID), zap.Error(err))
		h.failText(ctx, "Something went wrong. Please try again.")
		return
	}

	h.render(ctx, http.StatusOK, "dashboard.html", dashboardData{
		Username: user.Username,
		Tasks:    tasks,
		Flash:    takeFlash(ctx),
	})
}

// CreateTask adds a task from the dashboard form and redirects back.
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)

	form := transport.ParseTaskForm(ctx.PostArgs())
	if !form.Valid() {
		ctx.Error("task content is required", http.StatusBadRequest)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Add(stdCtx, user.ID, form.Content); err != nil {
		h.logger.Error("task creation failed", zap.Int64("user_id", user.ID), zap.Error(err))
		h.failText(ctx, "There was an issue adding your task")
		return
	}

	h.redirect(ctx, "/dashboard")
}

// EditPage renders the update form pre-filled with the task's current content.
func (h *TaskHandler) EditPage(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, user.ID, id)
	if err != nil {
		h.taskError(ctx, err, "You are not authorized to update this task", "There was an issue loading your task")
		return
	}

	h.render(ctx, http.StatusOK, "update.html", updateData{Task: task})
}

// UpdateTask applies the submitted content to the task and redirects to the dashboard.
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	form := transport.ParseTaskForm(ctx.PostArgs())
	if !form.Valid() {
		ctx.Error("task content is required", http.StatusBadRequest)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Update(stdCtx, user.ID, id, form.Content); err != nil {
		h.taskError(ctx, err, "You are not authorized to update this task", "There was an issue updating your task")
		return
	}

	h.redirect(ctx, "/dashboard")
}

// ToggleTask flips the task's completion flag and redirects to the dashboard.
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Toggle(stdCtx, user.ID, id); err != nil {
		h.taskError(ctx, err, "You are not authorized to update this task", "There was an issue updating your task")
		return
	}

	h.redirect(ctx, "/dashboard")
}

// DeleteTask removes the task permanently and redirects to the dashboard.
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFromRequest(ctx)
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, user.ID, id); err != nil {
		h.taskError(ctx, err, "You are not authorized to delete this task", "There was an issue deleting your task")
		return
	}

	h.redirect(ctx, "/dashboard")
}

// taskError maps the shared failure modes of the task operations: missing id
// is a 404, another user's task flashes a message and bounces back to the
// dashboard untouched, anything else is a terminal generic failure.
func (h *TaskHandler) taskError(ctx *fasthttp.RequestCtx, err error, deniedMessage, failureMessage string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.notFound(ctx)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		setFlash(ctx, deniedMessage)
		h.redirect(ctx, "/dashboard")
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		ctx.Error("task content is required", http.StatusBadRequest)
	default:
		h.logger.Error("task operation failed", zap.Error(err))
		h.failText(ctx, failureMessage)
	}
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.notFound(ctx)
		return 0, false
	}
	return id, true
}
