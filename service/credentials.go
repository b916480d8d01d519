package service

import "golang.org/x/crypto/bcrypt"

// Credentials hashes secrets for storage and verifies candidates against them.
type Credentials interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
}

// BcryptCredentials uses bcrypt. A zero Cost means bcrypt.DefaultCost.
type BcryptCredentials struct {
	Cost int
}

func (b BcryptCredentials) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptCredentials) Verify(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
