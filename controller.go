package signup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Status int

const (
	StatusOK Status = iota
	StatusBadRequest
	StatusServerError
)

// Response is the outcome of a signup. Account is set only for StatusOK;
// Err is set for every other status.
type Response struct {
	Status  Status
	Account Account
	Err     error
}

func (r Response) StatusCode() int {
	switch r.Status {
	case StatusOK:
		return http.StatusOK
	case StatusBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SignupRequest is the inbound signup payload. An empty value counts as missing.
type SignupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// requiredFields lists the fields in the order they are checked.
func (r SignupRequest) requiredFields() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"name", r.Name},
		{"email", r.Email},
		{"password", r.Password},
		{"passwordConfirmation", r.PasswordConfirmation},
	}
}

type SignupController struct {
	emails EmailValidator
	svc    Service
}

func NewSignupController(emails EmailValidator, svc Service) *SignupController {
	return &SignupController{emails: emails, svc: svc}
}

// Handle runs the signup checks in order and stops at the first failure.
func (c *SignupController) Handle(ctx context.Context, req SignupRequest) Response {
	for _, f := range req.requiredFields() {
		if f.value == "" {
			return badRequest(&MissingParamError{Field: f.name})
		}
	}

	if req.Password != req.PasswordConfirmation {
		return badRequest(&InvalidParamError{Field: "passwordConfirmation"})
	}

	if !c.emails.IsValid(req.Email) {
		return badRequest(&InvalidParamError{Field: "email"})
	}

	acc, err := c.addAccount(ctx, AddAccountRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("signup failed")
		return serverError()
	}

	return ok(acc)
}

// addAccount turns a panicking Service into an error so that Handle always
// produces a Response.
func (c *SignupController) addAccount(ctx context.Context, req AddAccountRequest) (acc Account, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("add account panicked: %v", r)
		}
	}()
	return c.svc.AddAccount(ctx, req)
}

func badRequest(err error) Response {
	log.Debug().Str("reason", err.Error()).Msg("signup rejected")
	return Response{Status: StatusBadRequest, Err: err}
}

func serverError() Response {
	return Response{Status: StatusServerError, Err: ErrServer}
}

func ok(acc Account) Response {
	return Response{Status: StatusOK, Account: acc}
}
