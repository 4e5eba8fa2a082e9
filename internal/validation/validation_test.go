package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("graduate@university.edu"))
	assert.NoError(t, ValidateEmail("hr+jobs@company.co.uk"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(string(make([]byte, 80))))
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole("graduate"))
	assert.NoError(t, ValidateRole("company"))
	assert.NoError(t, ValidateRole("ministry"))
	assert.Error(t, ValidateRole("admin"))
	assert.Error(t, ValidateRole(""))
}

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("123456789012"))
	assert.Error(t, ValidateCardNumber("12345678901"))
	assert.Error(t, ValidateCardNumber("1234567890123"))
	assert.Error(t, ValidateCardNumber("12345678901a"))
	assert.Error(t, ValidateCardNumber(""))
}
