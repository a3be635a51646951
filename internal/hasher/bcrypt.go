package hasher

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements PasswordHasher with bcrypt. The cost is the
// configurable work factor; each call salts independently and the resulting
// string encodes algorithm, cost and salt.
type BcryptHasher struct {
	cost int
}

var errEmptyPassword = errors.New("password is empty")

// NewBcryptHasher builds a hasher with the given cost. Costs outside the
// range bcrypt accepts fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// Hash derives a salted bcrypt hash from password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify recomputes the derivation with the parameters embedded in hash and
// compares in constant time.
func (h *BcryptHasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
