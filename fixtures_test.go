package signup

import (
	"context"
	"sync"
)

func validAccount() Account {
	return Account{ID: "valid_id", Name: "valid_name", Email: "valid_email@mail.com", Password: "valid_password"}
}

func validSignupRequest() SignupRequest {
	return SignupRequest{
		Name:                 "any_name",
		Email:                "any_email@mail.com",
		Password:             "any_password",
		PasswordConfirmation: "any_password",
	}
}

type hasherSpy struct {
	plaintext string
	calls     int
	hash      string
	err       error
}

func (h *hasherSpy) Hash(_ context.Context, plaintext string) (string, error) {
	h.calls++
	h.plaintext = plaintext
	if h.err != nil {
		return "", h.err
	}
	return h.hash, nil
}

type repositorySpy struct {
	mu    sync.Mutex
	req   AddAccountRequest
	calls int
	acc   Account
	err   error
}

func (r *repositorySpy) Add(_ context.Context, req AddAccountRequest) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.req = req
	if r.err != nil {
		return Account{}, r.err
	}
	return r.acc, nil
}

type emailValidatorStub struct {
	valid bool
	email string
}

func (v *emailValidatorStub) IsValid(email string) bool {
	v.email = email
	return v.valid
}

type serviceSpy struct {
	called bool
	req    AddAccountRequest
	acc    Account
	err    error
	panics bool
}

func (s *serviceSpy) AddAccount(_ context.Context, req AddAccountRequest) (Account, error) {
	s.called = true
	s.req = req
	if s.panics {
		panic("unexpected")
	}
	return s.acc, s.err
}
