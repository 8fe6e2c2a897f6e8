package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the directory's provisioning cost so freshly hashed and
// stored credentials verify interchangeably.
const bcryptCost = 12

const specialChars = `!@#$%^&*(),.?":{}|<>`

// HashPassword hashes a password with bcrypt. The output embeds its own salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. The
// comparison happens inside bcrypt; callers must not add timing-dependent
// branches of their own.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordStrength validates the password policy. It returns the first
// failing requirement, not a cumulative list.
func CheckPasswordStrength(password string) (bool, string) {
	if len(password) < 12 {
		return false, "Password must be at least 12 characters"
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	switch {
	case !upper:
		return false, "Password must contain uppercase letter"
	case !lower:
		return false, "Password must contain lowercase letter"
	case !digit:
		return false, "Password must contain number"
	case !special:
		return false, "Password must contain special character"
	}
	return true, "Password is strong"
}
