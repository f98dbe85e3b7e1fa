package util

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength 스태프 계정 최소 비밀번호 길이
const MinPasswordLength = 8

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

var bcryptCost = bcrypt.DefaultCost

// HashPassword hashes a plain text password.
// bcrypt rejects inputs longer than 72 bytes with bcrypt.ErrPasswordTooLong.
func HashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
