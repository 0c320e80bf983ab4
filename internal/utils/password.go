package utils

import "golang.org/x/crypto/bcrypt"

// MinPasswordLen is the shortest admin password accepted at registration.
const MinPasswordLen = 8

// HashPassword returns a bcrypt hash.  A cost outside bcrypt's range is
// replaced by bcrypt.DefaultCost so a bad BCRYPT_COST cannot block
// registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
