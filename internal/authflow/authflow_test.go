package authflow

import (
	"context"
	"errors"
	"testing"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

type fakeAuth struct {
	loginCalls    int
	registerCalls int
	err           error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.AuthResult{Token: "tok", User: api.User{ID: "1", Email: email}}, nil
}

func (f *fakeAuth) Register(ctx context.Context, email, password, username string) (*api.AuthResult, error) {
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.AuthResult{Token: "tok", User: api.User{ID: "2", Email: email, Username: username}}, nil
}

type fakeSession struct {
	user  *api.User
	token string
}

func (s *fakeSession) Login(ctx context.Context, u api.User, token string) error {
	s.user = &u
	s.token = token
	return nil
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		form RegisterForm
		want string
	}{
		{RegisterForm{Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret1"}, MsgMissingFields},
		{RegisterForm{Username: "a", Email: "a@b.c", Password: "12345", ConfirmPassword: "12345"}, MsgPasswordTooShort},
		{RegisterForm{Username: "a", Email: "a@b.c", Password: "123456", ConfirmPassword: "123457"}, MsgPasswordMismatch},
	}
	for _, tc := range cases {
		fa := &fakeAuth{}
		_, err := New(fa, &fakeSession{}).Register(context.Background(), tc.form)
		if err == nil || err.Error() != tc.want || !IsLocal(err) {
			t.Fatalf("Register(%+v) err=%v, want %q", tc.form, err, tc.want)
		}
		if fa.registerCalls != 0 {
			t.Fatalf("validation failure reached the network")
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	fa := &fakeAuth{}
	_, err := New(fa, &fakeSession{}).Login(context.Background(), LoginForm{Email: "  "})
	if err == nil || err.Error() != MsgMissingFields {
		t.Fatalf("err=%v, want %q", err, MsgMissingFields)
	}
	if fa.loginCalls != 0 {
		t.Fatalf("validation failure reached the network")
	}
}

func TestLoginSuccessPopulatesSession(t *testing.T) {
	sess := &fakeSession{}
	u, err := New(&fakeAuth{}, sess).Login(context.Background(), LoginForm{Email: " t@x.io ", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "t@x.io" || sess.user == nil || sess.token != "tok" {
		t.Fatalf("user=%+v session=%+v", u, sess)
	}
}

func TestServerRejectionShowsServerText(t *testing.T) {
	fa := &fakeAuth{err: &api.Error{Status: 401, Message: "Invalid credentials"}}
	sess := &fakeSession{}
	_, err := New(fa, sess).Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
	if err == nil || err.Error() != "Invalid credentials" || IsLocal(err) {
		t.Fatalf("err=%v, want server text", err)
	}
	if sess.user != nil {
		t.Fatalf("session populated on failure")
	}

	fa.err = errors.New("dial tcp: refused")
	_, err = New(fa, sess).Register(context.Background(), RegisterForm{Username: "u", Email: "a@b.c", Password: "123456", ConfirmPassword: "123456"})
	if err == nil || err.Error() != "Registration failed" {
		t.Fatalf("err=%v, want fallback", err)
	}
}

func TestValidateFunctions(t *testing.T) {
	if err := ValidateLogin("a@b.c", ""); err == nil || err.Error() != MsgMissingFields {
		t.Fatalf("ValidateLogin err=%v", err)
	}
	if err := ValidateLogin("a@b.c", "x"); err != nil {
		t.Fatalf("ValidateLogin err=%v, want nil", err)
	}
	if err := ValidateRegister("u", "a@b.c", "abcdéf", "abcdéf"); err != nil {
		t.Fatalf("ValidateRegister counts runes: err=%v", err)
	}
}
