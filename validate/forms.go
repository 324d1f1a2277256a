package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one (field, message) pair of a validation outcome. Order
// follows the form's field declaration order.
type FieldError struct {
	Field   string
	Message string
}

// LoginForm is the shopper login submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email" errmsg:"Please enter a valid e-mail"`
	Password string `form:"password" validate:"min=8" errmsg:"Your password should be at least 8 characters"`
}

// AdminLoginForm is the administrator login submission. The admin password
// floor differs from the shopper one on purpose.
type AdminLoginForm struct {
	Email    string `form:"email" validate:"required,email" errmsg:"Please enter a valid e-mail"`
	Password string `form:"password" validate:"min=4" errmsg:"Your password should be at least 4 characters"`
}

// SignupForm is the shopper signup submission.
type SignupForm struct {
	Email           string `form:"email" validate:"required,email" errmsg:"Please enter a valid e-mail"`
	Name            string `form:"name" validate:"min=3" errmsg:"Your name should have minimum of three characters"`
	Password        string `form:"password" validate:"min=8" errmsg:"Your password must be at least 8 characters long"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password" errmsg:"Passwords did not match"`
}

// ResetRequestForm is the password-reset request submission.
type ResetRequestForm struct {
	Email string `form:"email" validate:"required,email" errmsg:"Please enter a valid e-mail"`
}

// NewPasswordForm is the reset-consumption submission. Token shape is not
// validated here; a non-matching token fails the store lookup instead.
type NewPasswordForm struct {
	NewPassword        string `form:"newPassword" validate:"min=6" errmsg:"Your password must be at least 6 characters long"`
	ConfirmNewPassword string `form:"confirmNewPassword" validate:"eqfield=NewPassword" errmsg:"Passwords did not match"`
}

// Checker runs the pre-check rules over a form struct.
type Checker struct {
	validate *validator.Validate
}

// NewChecker builds a Checker. Field names in outcomes come from the form
// tag, matching the HTML input names.
func NewChecker() *Checker {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &Checker{validate: v}
}

// Check returns the ordered validation outcome for form, which must be a
// struct (or pointer to struct) carrying validate/errmsg tags. An empty
// result means the submission passed.
func (c *Checker) Check(form any) []FieldError {
	err := c.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "Invalid submission"}}
	}

	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageFor(formType, fe),
		})
	}
	return out
}

// messageFor resolves the user-facing message from the failing field's errmsg
// tag, falling back to a generic sentence for rules added without one.
func messageFor(formType reflect.Type, fe validator.FieldError) string {
	if field, ok := formType.FieldByName(fe.StructField()); ok {
		if msg := field.Tag.Get("errmsg"); msg != "" {
			return msg
		}
	}
	return "Invalid value for " + fe.Field()
}
