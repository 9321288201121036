package signup

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher producing salted bcrypt hashes with the given cost.
func NewBcryptHasher(cost int) (Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &bcryptHasher{cost: cost}, nil
}

type hashResult struct {
	hash []byte
	err  error
}

func (h *bcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: empty password", ErrHashing)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	// buffered so the goroutine can finish after the caller has gone
	done := make(chan hashResult, 1)
	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		done <- hashResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrHashing, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("%w: %v", ErrHashing, res.err)
		}
		return string(res.hash), nil
	}
}
