package service

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost keeps a single hash in the tens of milliseconds, slow
// enough to resist brute force without dominating login latency.
const DefaultHashCost = 12

// HashingService wraps bcrypt password hashing. bcrypt embeds a fresh
// random salt in every digest, so hashing the same password twice yields
// different digests.
type HashingService struct {
	cost int
}

func NewHashingService(cost int) *HashingService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &HashingService{cost: cost}
}

func (s *HashingService) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. The comparison is
// constant time, and a malformed digest simply yields false.
func (s *HashingService) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
