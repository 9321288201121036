package signup

import (
	"context"
)

type service struct {
	hasher   Hasher
	accounts Repository
}

func NewService(hasher Hasher, accounts Repository) Service {
	return &service{hasher: hasher, accounts: accounts}
}

// AddAccount hashes the password and stores the account. The hash always
// happens first; a failed hash means the repository is never called.
func (svc *service) AddAccount(ctx context.Context, req AddAccountRequest) (Account, error) {
	hash, err := svc.hasher.Hash(ctx, req.Password)
	if err != nil {
		return Account{}, err
	}

	return svc.accounts.Add(ctx, AddAccountRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
}
