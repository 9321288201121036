package signup

import "context"

// Service adds accounts. It hashes the plaintext password before handing the
// request to a Repository.
type Service interface {
	AddAccount(ctx context.Context, req AddAccountRequest) (Account, error)
}

// Repository is the account store. It assigns the account ID and never hashes.
type Repository interface {
	Add(ctx context.Context, req AddAccountRequest) (Account, error)
}

type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
}

type EmailValidator interface {
	IsValid(email string) bool
}
