// Package password wraps bcrypt for one-way credential hashing.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies salted bcrypt digests. The zero value is not
// usable; construct with New.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given work factor. Costs outside bcrypt's
// valid range fall back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash computes a salted digest. Each call salts independently, so hashing
// the same plaintext twice yields different digests.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. Malformed digests
// verify as false; bcrypt's comparison is constant-time.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
