package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	util "github.com/spec-kit/resort-admin-service/pkg/util"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// ValidatePasswordStrength enforces the back-office password policy:
// at least 8 characters with upper, lower, digit and special characters.
func ValidatePasswordStrength(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	details := map[string]any{}
	if len(password) < 8 {
		details["length"] = "must be at least 8 characters"
	}
	if !hasUpper {
		details["uppercase"] = "must contain an uppercase letter"
	}
	if !hasLower {
		details["lowercase"] = "must contain a lowercase letter"
	}
	if !hasDigit {
		details["digit"] = "must contain a digit"
	}
	if !hasSpecial {
		details["special"] = "must contain a special character"
	}
	if len(details) > 0 {
		return util.NewValidationError("password does not meet the strength policy", details)
	}
	return nil
}
