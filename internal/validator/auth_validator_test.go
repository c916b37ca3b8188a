package validator_test

import (
	"testing"

	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	v := validator.NewAuthValidator()

	assert.NoError(t, v.ValidateSignup("a@example.com", "password123", "password123"))

	//必須
	assert.Error(t, v.ValidateSignup("", "password123", "password123"))
	assert.Error(t, v.ValidateSignup("a@example.com", "", ""))

	//形式
	assert.Error(t, v.ValidateSignup("not-an-email", "password123", "password123"))
	assert.Error(t, v.ValidateSignup("a@b", "password123", "password123"))

	//長さ
	assert.Error(t, v.ValidateSignup("a@example.com", "short", "short"))

	//確認不一致
	assert.Error(t, v.ValidateSignup("a@example.com", "password123", "password124"))
}

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("a@example.com", "whatever"))
	assert.Error(t, v.ValidateLogin("", "whatever"))
	assert.Error(t, v.ValidateLogin("a@example.com", ""))
	assert.Error(t, v.ValidateLogin("bad-email", "whatever"))
}

func TestValidateNewPassword(t *testing.T) {
	v := validator.NewAuthValidator()

	assert.NoError(t, v.ValidateNewPassword("password123", "password123"))
	assert.Error(t, v.ValidateNewPassword("", ""))
	assert.Error(t, v.ValidateNewPassword("short", "short"))
	assert.Error(t, v.ValidateNewPassword("password123", "different123"))
}
