package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinHashCost is the floor for the bcrypt work factor.
const MinHashCost = 10

// Hasher wraps bcrypt with a work factor fixed at construction time.
// bcrypt output embeds its own salt and cost, so verification needs no
// side channel, and its comparison is constant-time.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < MinHashCost {
		cost = MinHashCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted one-way hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty: %w", ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash. A mismatch
// is (false, nil); only malformed inputs produce an error.
func (h *Hasher) Verify(password, hashed string) (bool, error) {
	if password == "" || hashed == "" {
		return false, fmt.Errorf("password and hash must not be empty: %w", ErrInvalidInput)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("malformed password hash: %w", ErrInvalidInput)
}
