package signup

import (
	"errors"
	"fmt"
)

// ErrServer is the only error a caller sees when a collaborator fails.
var ErrServer = errors.New("Internal server error")

type MissingParamError struct {
	Field string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("Missing param: %s", e.Field)
}

type InvalidParamError struct {
	Field string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("Invalid param: %s", e.Field)
}
