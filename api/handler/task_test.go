package handler

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/internal/middleware"
)

func (e *testEnv) addTask(t *testing.T, ownerID int64, content string) *domain.Task {
	t.Helper()
	task, err := e.task.Add(context.Background(), ownerID, content)
	if err != nil {
		t.Fatalf("Add(%q): %v", content, err)
	}
	return task
}

func asUser(ctx *fasthttp.RequestCtx, user *domain.User) *fasthttp.RequestCtx {
	middleware.SetUser(ctx, user)
	return ctx
}

func withTaskID(ctx *fasthttp.RequestCtx, id int64) *fasthttp.RequestCtx {
	ctx.SetUserValue("id", strconv.FormatInt(id, 10))
	return ctx
}

var (
	alice = &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}
	bob   = &domain.User{ID: 2, Username: "bob", Email: "b@x.com"}
)

func TestDashboardListsOnlyOwnTasks(t *testing.T) {
	env := newTestEnv()
	env.addTask(t, alice.ID, "write report")
	env.addTask(t, bob.ID, "walk the dog")

	ctx := asUser(getCtx("/dashboard"), alice)
	env.taskHandler.Dashboard(ctx)

	body := string(ctx.Response.Body())
	if !strings.Contains(body, "write report") {
		t.Fatal("dashboard missing the caller's task")
	}
	if strings.Contains(body, "walk the dog") {
		t.Fatal("dashboard leaked another user's task")
	}
}

func TestCreateTaskAddsAndRedirects(t *testing.T) {
	env := newTestEnv()

	ctx := asUser(postFormCtx("/dashboard", url.Values{"content": {"buy milk"}}), alice)
	env.taskHandler.CreateTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if len(env.tasks.tasks) != 1 {
		t.Fatalf("expected one task row, have %d", len(env.tasks.tasks))
	}
	for _, task := range env.tasks.tasks {
		if task.Content != "buy milk" || task.OwnerID != alice.ID {
			t.Fatalf("unexpected task row: %+v", task)
		}
	}
}

func TestCreateTaskMissingContent(t *testing.T) {
	env := newTestEnv()

	ctx := asUser(postFormCtx("/dashboard", url.Values{}), alice)
	env.taskHandler.CreateTask(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusBadRequest {
		t.Fatalf("status %d, want %d", got, fasthttp.StatusBadRequest)
	}
	if len(env.tasks.tasks) != 0 {
		t.Fatal("task created from an empty submission")
	}
}

func TestEditPagePrefillsContent(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(getCtx("/update/1"), alice), task.ID)
	env.taskHandler.EditPage(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Fatalf("status %d, want %d", got, fasthttp.StatusOK)
	}
	if body := string(ctx.Response.Body()); !strings.Contains(body, `value="buy milk"`) {
		t.Fatal("edit form not pre-filled with the current content")
	}
}

func TestUpdateTaskApplies(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(postFormCtx("/update/1", url.Values{"content": {"buy oat milk"}}), alice), task.ID)
	env.taskHandler.UpdateTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if got := env.tasks.tasks[task.ID].Content; got != "buy oat milk" {
		t.Fatalf("content %q, want %q", got, "buy oat milk")
	}
}

func TestUpdateTaskNotOwnerFlashesAndRedirects(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(postFormCtx("/update/1", url.Values{"content": {"hijacked"}}), bob), task.ID)
	env.taskHandler.UpdateTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if _, ok := responseCookie(ctx, "todo_flash"); !ok {
		t.Fatal("authorization message not flashed")
	}
	if got := env.tasks.tasks[task.ID].Content; got != "buy milk" {
		t.Fatalf("task mutated by non-owner: %q", got)
	}
}

func TestDeleteTaskNotOwnerLeavesTask(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(getCtx("/delete/1"), bob), task.ID)
	env.taskHandler.DeleteTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if _, ok := env.tasks.tasks[task.ID]; !ok {
		t.Fatal("task deleted by non-owner")
	}
}

func TestDeleteTaskByOwnerRemovesIt(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(getCtx("/delete/1"), alice), task.ID)
	env.taskHandler.DeleteTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if _, ok := env.tasks.tasks[task.ID]; ok {
		t.Fatal("task still present after delete")
	}
}

func TestDeleteMissingTaskIs404(t *testing.T) {
	env := newTestEnv()

	ctx := withTaskID(asUser(getCtx("/delete/42"), alice), 42)
	env.taskHandler.DeleteTask(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Fatalf("status %d, want %d", got, fasthttp.StatusNotFound)
	}
}

func TestDeleteNonNumericIDIs404(t *testing.T) {
	env := newTestEnv()

	ctx := asUser(getCtx("/delete/abc"), alice)
	ctx.SetUserValue("id", "abc")
	env.taskHandler.DeleteTask(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Fatalf("status %d, want %d", got, fasthttp.StatusNotFound)
	}
}

func TestToggleTaskMarksComplete(t *testing.T) {
	env := newTestEnv()
	task := env.addTask(t, alice.ID, "buy milk")

	ctx := withTaskID(asUser(getCtx("/toggle/1"), alice), task.ID)
	env.taskHandler.ToggleTask(ctx)

	if loc := string(ctx.Response.Header.Peek("Location")); loc != "/dashboard" {
		t.Fatalf("redirected to %q, want /dashboard", loc)
	}
	if !env.tasks.tasks[task.ID].Completed {
		t.Fatal("task not completed after toggle")
	}
}
