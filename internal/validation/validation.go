// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"joinwork/internal/models"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	cardNumberRegex = regexp.MustCompile(`^\d{12}$`)
)

// NormalizeEmail trims surrounding whitespace and lowercases an email address.
// Every lookup and every stored email goes through this so the unique index
// on users.email is case-insensitive in effect.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks if a password meets the minimum requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	// Prevent unreasonable inputs (bcrypt truncates past 72 bytes anyway)
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}
	return nil
}

// ValidateRole checks that a signup role is one of the known account roles.
func ValidateRole(role string) error {
	switch role {
	case models.RoleGraduate, models.RoleCompany, models.RoleMinistry:
		return nil
	}
	return fmt.Errorf("role must be graduate, company, or ministry")
}

// ValidateCardNumber checks a unified card number: exactly 12 digits.
func ValidateCardNumber(cardNumber string) error {
	if !cardNumberRegex.MatchString(cardNumber) {
		return fmt.Errorf("unified card number must be exactly 12 digits")
	}
	return nil
}
