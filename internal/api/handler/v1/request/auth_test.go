package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "jo@example.com",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
		Name:            "Jo",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"

		assert.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "pw1"
		req.ConfirmPassword = "pw1"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a number", func(t *testing.T) {
		req := valid
		req.Password = "passwords"
		req.ConfirmPassword = "passwords"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a letter", func(t *testing.T) {
		req := valid
		req.Password = "12345678"
		req.ConfirmPassword = "12345678"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirm password mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "passw0rd2"

		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("missing name", func(t *testing.T) {
		req := valid
		req.Name = ""

		assert.Error(t, req.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := LoginRequest{Email: "jo@example.com", Password: "passw0rd1"}

		assert.NoError(t, req.Validate())
	})

	t.Run("missing password", func(t *testing.T) {
		req := LoginRequest{Email: "jo@example.com"}

		assert.Error(t, req.Validate())
	})
}
