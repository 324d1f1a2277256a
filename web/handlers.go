package web

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	shopAuth "github.com/MrEthical07/shopAuth"
	"github.com/MrEthical07/shopAuth/middleware"
	"github.com/MrEthical07/shopAuth/session"
)

// Handler serves the storefront's authentication pages over the auth
// [shopAuth.Manager].
type Handler struct {
	auth       *shopAuth.Manager
	render     Renderer
	log        zerolog.Logger
	cookieName string
}

// NewHandler wires the handler layer. cookieName may be empty to use
// [middleware.DefaultCookieName].
func NewHandler(auth *shopAuth.Manager, render Renderer, log zerolog.Logger, cookieName string) *Handler {
	return &Handler{
		auth:       auth,
		render:     render,
		log:        log,
		cookieName: cookieName,
	}
}

// Routes returns the handler tree with session resolution and the CSRF guard
// already applied. Every state-changing route sits behind the guard.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", h.getLogin)
	mux.HandleFunc("POST /login", h.postLogin)
	mux.HandleFunc("GET /signup", h.getSignup)
	mux.HandleFunc("POST /signup", h.postSignup)
	mux.HandleFunc("GET /admin-login", h.getAdminLogin)
	mux.HandleFunc("POST /admin-login", h.postAdminLogin)
	mux.HandleFunc("POST /logout", h.postLogout)
	mux.HandleFunc("GET /reset", h.getReset)
	mux.HandleFunc("POST /reset", h.postReset)
	mux.HandleFunc("GET /newPassword/{token}", h.getNewPassword)
	mux.HandleFunc("POST /newPassword", h.postNewPassword)

	sessions := middleware.Sessions(h.auth.Sessions(), h.cookieName)
	guard := middleware.CSRF()
	return sessions(guard(mux))
}

func (h *Handler) getLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "login", ViewData{
		Path:      "/login",
		PageTitle: "Login",
	})
}

func (h *Handler) postLogin(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, shopAuth.KindShopper, "/login", "login", "Login", "/user/welcome")
}

func (h *Handler) getAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "admin-login", ViewData{
		Path:      "/admin-login",
		PageTitle: "Admin Login",
	})
}

func (h *Handler) postAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, shopAuth.KindAdmin, "/admin-login", "admin-login", "Admin Login", "/admin/welcome")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request, kind shopAuth.PrincipalKind, path, view, title, welcome string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.fatal(w, r, shopAuth.ErrSessionMissing)
		return
	}

	input := shopAuth.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	_, err := h.auth.Login(r.Context(), sess, kind, input)
	switch {
	case err == nil:
		http.Redirect(w, r, welcome, http.StatusSeeOther)
	case shopAuth.AsValidation(err) != nil:
		h.renderPage(w, r, http.StatusUnprocessableEntity, view, ViewData{
			Path:        path,
			PageTitle:   title,
			FieldErrors: shopAuth.AsValidation(err).Fields,
			Form:        map[string]string{"email": input.Email},
		})
	case errors.Is(err, shopAuth.ErrInvalidCredentials):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Email or password was wrong", path)
	default:
		h.dependencyFailure(w, r, sess, err, path)
	}
}

func (h *Handler) getSignup(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "signup", ViewData{
		Path:      "/signup",
		PageTitle: "Signup",
	})
}

func (h *Handler) postSignup(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.fatal(w, r, shopAuth.ErrSessionMissing)
		return
	}

	input := shopAuth.SignupInput{
		Email:           r.PostFormValue("email"),
		Name:            r.PostFormValue("name"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	redo := ViewData{
		Path:      "/signup",
		PageTitle: "Signup",
		Form:      map[string]string{"email": input.Email, "name": input.Name},
	}

	err := h.auth.Signup(r.Context(), sess, input)
	switch {
	case err == nil:
		// The success flash is already queued; the login page drains it.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case shopAuth.AsValidation(err) != nil:
		redo.FieldErrors = shopAuth.AsValidation(err).Fields
		h.renderPage(w, r, http.StatusUnprocessableEntity, "signup", redo)
	case errors.Is(err, shopAuth.ErrEmailTaken):
		redo.FieldErrors = []shopAuth.FieldError{{
			Field:   "email",
			Message: "E-Mail exists already, please pick a different one.",
		}}
		h.renderPage(w, r, http.StatusUnprocessableEntity, "signup", redo)
	default:
		h.dependencyFailure(w, r, sess, err, "/signup")
	}
}

func (h *Handler) postLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	if err := h.auth.Logout(r.Context(), sess); err != nil {
		h.fatal(w, r, err)
		return
	}

	// The session is gone; expire the cookie alongside it.
	name := h.cookieName
	if name == "" {
		name = middleware.DefaultCookieName
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) getReset(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "reset", ViewData{
		Path:      "/reset",
		PageTitle: "Reset Password",
	})
}

func (h *Handler) postReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.fatal(w, r, shopAuth.ErrSessionMissing)
		return
	}

	email := r.PostFormValue("email")

	err := h.auth.RequestPasswordReset(r.Context(), email)
	switch {
	case err == nil:
		h.flashAndRedirect(w, r, sess, session.FlashSuccess, "Email sent!", "/")
	case shopAuth.AsValidation(err) != nil:
		h.renderPage(w, r, http.StatusUnprocessableEntity, "reset", ViewData{
			Path:        "/reset",
			PageTitle:   "Reset Password",
			FieldErrors: shopAuth.AsValidation(err).Fields,
			Form:        map[string]string{"email": email},
		})
	case errors.Is(err, shopAuth.ErrEmailUnknown):
		h.flashAndRedirect(w, r, sess, session.FlashError, "This e-mail is not associated with an account!", "/reset")
	case errors.Is(err, shopAuth.ErrMailDelivery):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Could not send the e-mail, please contact site owner.", "/")
	default:
		h.dependencyFailure(w, r, sess, err, "/reset")
	}
}

func (h *Handler) getNewPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.fatal(w, r, shopAuth.ErrSessionMissing)
		return
	}

	token := r.PathValue("token")

	_, err := h.auth.LookupResetToken(r.Context(), token)
	switch {
	case err == nil:
		h.renderPage(w, r, http.StatusOK, "new-password", ViewData{
			Path:      "/newPassword",
			PageTitle: "New Password",
			Token:     token,
		})
	case errors.Is(err, shopAuth.ErrResetTokenInvalid):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Your token is not valid!", "/")
	default:
		h.dependencyFailure(w, r, sess, err, "/")
	}
}

func (h *Handler) postNewPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.fatal(w, r, shopAuth.ErrSessionMissing)
		return
	}

	input := shopAuth.NewPasswordInput{
		Token:              r.PostFormValue("token"),
		NewPassword:        r.PostFormValue("newPassword"),
		ConfirmNewPassword: r.PostFormValue("confirmNewPassword"),
	}

	err := h.auth.ConsumePasswordReset(r.Context(), sess, input)
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case shopAuth.AsValidation(err) != nil:
		h.renderPage(w, r, http.StatusUnprocessableEntity, "new-password", ViewData{
			Path:        "/newPassword",
			PageTitle:   "New Password",
			FieldErrors: shopAuth.AsValidation(err).Fields,
			Token:       input.Token,
		})
	case errors.Is(err, shopAuth.ErrResetTokenInvalid):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Your token is not valid, try sending a new token to your e-mail.", "/")
	default:
		h.dependencyFailure(w, r, sess, err, "/")
	}
}

// renderPage fills CSRF token and drained flash queues into data and hands it
// to the renderer.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, view string, data ViewData) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if ok {
		data.CSRFToken = sess.CSRFToken()

		if errs, err := h.auth.Sessions().DrainFlash(r.Context(), sess.SessionID, session.FlashError); err == nil {
			data.ErrorFlash = errs
		} else {
			h.log.Error().Err(err).Msg("flash drain failed")
		}
		if oks, err := h.auth.Sessions().DrainFlash(r.Context(), sess.SessionID, session.FlashSuccess); err == nil {
			data.SuccessFlash = oks
		} else {
			h.log.Error().Err(err).Msg("flash drain failed")
		}
	}

	if err := h.render.Render(w, status, view, data); err != nil {
		h.log.Error().Err(err).Str("view", view).Msg("render failed")
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
	}
}

func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, category, message, target string) {
	if err := h.auth.Sessions().PushFlash(r.Context(), sess, category, message); err != nil {
		h.log.Error().Err(err).Msg("flash push failed")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// dependencyFailure hides infrastructure detail behind a generic flash; the
// underlying error was already logged where it was mapped.
func (h *Handler) dependencyFailure(w http.ResponseWriter, r *http.Request, sess *session.Session, err error, target string) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed on a dependency")
	h.flashAndRedirect(w, r, sess, session.FlashError, "Something went wrong, please try again.", target)
}

// fatal covers invariant violations no user action can cause.
func (h *Handler) fatal(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("fatal handler error")
	h.renderError(w, r)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request) {
	data := ViewData{
		Path:      r.URL.Path,
		PageTitle: "Error!",
	}
	if err := h.render.Render(w, http.StatusInternalServerError, "error", data); err != nil {
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
	}
}
