package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFormValid(t *testing.T) {
	c := NewChecker()

	out := c.Check(LoginForm{Email: "a@b.com", Password: "12345678"})
	assert.Empty(t, out)
}

func TestLoginFormBadEmailAndShortPassword(t *testing.T) {
	c := NewChecker()

	out := c.Check(LoginForm{Email: "not-an-email", Password: "short"})
	require.Len(t, out, 2)

	// Outcome order follows field declaration order.
	assert.Equal(t, "email", out[0].Field)
	assert.Equal(t, "Please enter a valid e-mail", out[0].Message)
	assert.Equal(t, "password", out[1].Field)
	assert.Equal(t, "Your password should be at least 8 characters", out[1].Message)
}

func TestAdminLoginAllowsShorterPassword(t *testing.T) {
	c := NewChecker()

	assert.Empty(t, c.Check(AdminLoginForm{Email: "admin@shop.com", Password: "1234"}))

	out := c.Check(AdminLoginForm{Email: "admin@shop.com", Password: "123"})
	require.Len(t, out, 1)
	assert.Equal(t, "Your password should be at least 4 characters", out[0].Message)
}

func TestSignupFormConfirmMismatch(t *testing.T) {
	c := NewChecker()

	out := c.Check(SignupForm{
		Email:           "a@b.com",
		Name:            "Ann",
		Password:        "12345678",
		ConfirmPassword: "12345679",
	})
	require.Len(t, out, 1)
	assert.Equal(t, "confirmPassword", out[0].Field)
	assert.Equal(t, "Passwords did not match", out[0].Message)
}

func TestSignupFormShortName(t *testing.T) {
	c := NewChecker()

	out := c.Check(SignupForm{
		Email:           "a@b.com",
		Name:            "Al",
		Password:        "12345678",
		ConfirmPassword: "12345678",
	})
	require.Len(t, out, 1)
	assert.Equal(t, "name", out[0].Field)
	assert.Equal(t, "Your name should have minimum of three characters", out[0].Message)
}

func TestNewPasswordFormFloorIsSix(t *testing.T) {
	c := NewChecker()

	assert.Empty(t, c.Check(NewPasswordForm{NewPassword: "123456", ConfirmNewPassword: "123456"}))

	out := c.Check(NewPasswordForm{NewPassword: "12345", ConfirmNewPassword: "12345"})
	require.Len(t, out, 1)
	assert.Equal(t, "Your password must be at least 6 characters long", out[0].Message)
}

func TestResetRequestFormRequiresEmail(t *testing.T) {
	c := NewChecker()

	out := c.Check(ResetRequestForm{})
	require.Len(t, out, 1)
	assert.Equal(t, "email", out[0].Field)
	assert.Equal(t, "Please enter a valid e-mail", out[0].Message)
}
