package transport

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// RegisterForm carries the /register submission fields.
type RegisterForm struct {
	Username string
	Email    string
	Password string
}

func ParseRegisterForm(args *fasthttp.Args) RegisterForm {
	return RegisterForm{
		Username: formValue(args, "username"),
		Email:    formValue(args, "email"),
		Password: string(args.Peek("password")),
	}
}

func (f RegisterForm) Valid() bool {
	return f.Username != "" && f.Email != "" && f.Password != ""
}

// LoginForm carries the /login submission fields.
type LoginForm struct {
	Email    string
	Password string
}

func ParseLoginForm(args *fasthttp.Args) LoginForm {
	return LoginForm{
		Email:    formValue(args, "email"),
		Password: string(args.Peek("password")),
	}
}

func (f LoginForm) Valid() bool {
	return f.Email != "" && f.Password != ""
}

// TaskForm carries the dashboard and update submissions.
type TaskForm struct {
	Content string
}

func ParseTaskForm(args *fasthttp.Args) TaskForm {
	return TaskForm{Content: formValue(args, "content")}
}

func (f TaskForm) Valid() bool {
	return f.Content != ""
}

func formValue(args *fasthttp.Args, key string) string {
	return strings.TrimSpace(string(args.Peek(key)))
}
