// Package authflow validates the login and register forms locally and, on
// success, hands the backend's user and token to the session store.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

const MinPasswordLength = 6

const (
	MsgMissingFields    = "Please fill in all fields"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgPasswordMismatch = "Passwords do not match"
)

// FormError is shown under the form. Validation failures never reach the
// network; backend rejections carry the server's text.
type FormError struct {
	Message string
	// Local is true when the error came from validation.
	Local bool
}

func (e *FormError) Error() string { return e.Message }

// IsLocal reports whether err is a validation failure.
func IsLocal(err error) bool {
	var fe *FormError
	return errors.As(err, &fe) && fe.Local
}

type AuthClient interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, email, password, username string) (*api.AuthResult, error)
}

type SessionWriter interface {
	Login(ctx context.Context, u api.User, token string) error
}

type LoginForm struct {
	Email    string
	Password string
}

type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateLogin requires both fields.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return &FormError{Message: MsgMissingFields, Local: true}
	}
	return nil
}

// ValidateRegister requires every field, a password of at least
// MinPasswordLength characters and a matching confirmation.
func ValidateRegister(username, email, password, confirm string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" || confirm == "" {
		return &FormError{Message: MsgMissingFields, Local: true}
	}
	if len([]rune(password)) < MinPasswordLength {
		return &FormError{Message: MsgPasswordTooShort, Local: true}
	}
	if password != confirm {
		return &FormError{Message: MsgPasswordMismatch, Local: true}
	}
	return nil
}

func (f LoginForm) Validate() error {
	return ValidateLogin(f.Email, f.Password)
}

func (f RegisterForm) Validate() error {
	return ValidateRegister(f.Username, f.Email, f.Password, f.ConfirmPassword)
}

type Flow struct {
	client  AuthClient
	session SessionWriter
}

func New(client AuthClient, session SessionWriter) *Flow {
	return &Flow{client: client, session: session}
}

func (f *Flow) Login(ctx context.Context, form LoginForm) (*api.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	res, err := f.client.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		return nil, remoteError(err, "Login failed")
	}
	return f.adopt(ctx, res)
}

func (f *Flow) Register(ctx context.Context, form RegisterForm) (*api.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	res, err := f.client.Register(ctx, strings.TrimSpace(form.Email), form.Password, strings.TrimSpace(form.Username))
	if err != nil {
		return nil, remoteError(err, "Registration failed")
	}
	return f.adopt(ctx, res)
}

func (f *Flow) adopt(ctx context.Context, res *api.AuthResult) (*api.User, error) {
	if err := f.session.Login(ctx, res.User, res.Token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	u := res.User
	return &u, nil
}

func remoteError(err error, fallback string) error {
	return &FormError{Message: api.Message(err, fallback)}
}
