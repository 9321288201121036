package signup

import (
	"github.com/go-playground/validator/v10"
)

type emailValidator struct {
	validate *validator.Validate
}

// NewEmailValidator returns an EmailValidator that checks syntax only; no
// deliverability lookups are made.
func NewEmailValidator() EmailValidator {
	return &emailValidator{validate: validator.New()}
}

func (v *emailValidator) IsValid(email string) bool {
	if email == "" {
		return false
	}
	return v.validate.Var(email, "required,email") == nil
}
