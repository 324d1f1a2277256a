package web

import (
	"net/http"

	shopAuth "github.com/MrEthical07/shopAuth"
)

// Renderer turns a named view plus its data into a response body. The
// storefront's template engine implements it; tests plug in a stub.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data ViewData) error
}

// ViewData is everything a view needs: the anti-forgery token for mutating
// forms, drained flash messages, field errors with the submitted input echoed
// back, and per-view extras.
type ViewData struct {
	Path      string
	PageTitle string
	CSRFToken string

	ErrorFlash   []string
	SuccessFlash []string

	// FieldErrors and Form are populated on a failed submission so the view
	// re-renders with the user's input echoed back. Passwords are never
	// echoed.
	FieldErrors []shopAuth.FieldError
	Form        map[string]string

	// Token carries the recovery ticket for the new-password view.
	Token string
}

// ErrorMessage returns the first field error's message, the shape the views
// show above the form.
func (d ViewData) ErrorMessage() string {
	if len(d.FieldErrors) == 0 {
		return ""
	}
	return d.FieldErrors[0].Message
}
