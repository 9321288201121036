package signup

import (
	"context"
	"fmt"
	"sync"
)

type accountRepository struct {
	mu       sync.Mutex
	accounts map[ID]Account
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]Account{}}
}

// Add stores a new account on every call; identical requests get distinct IDs.
func (repo *accountRepository) Add(ctx context.Context, req AddAccountRequest) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	acc := Account{
		ID:       nextID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	repo.mu.Lock()
	repo.accounts[acc.ID] = acc
	repo.mu.Unlock()

	return acc, nil
}
