package signup

import (
	"errors"

	"github.com/rs/xid"
)

type ID string

// Account is a stored account. Password holds the hash, never the plaintext.
type Account struct {
	ID       ID
	Name     string
	Email    string
	Password string
}

// AddAccountRequest carries the fields needed to create an account. Password
// is plaintext on the way into the Service and a hash on the way into a Repository.
type AddAccountRequest struct {
	Name, Email, Password string
}

var (
	ErrHashing     = errors.New("error hashing password")
	ErrPersistence = errors.New("error saving account")
)

func nextID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
