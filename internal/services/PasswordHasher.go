package services

import (
	"crypto/subtle"
	"kinstore/internal/structures"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasherInterface interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlainHasher keeps passwords as submitted, matching existing users.json files.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type BcryptHasher struct {
	cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func NewPasswordHasher(conf *structures.Config) PasswordHasherInterface {
	if conf.Auth.PasswordHashing == "bcrypt" {
		return BcryptHasher{cost: bcrypt.DefaultCost}
	}
	return PlainHasher{}
}
