package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"workday-admin/internal/metrics"
	"workday-admin/internal/middleware"
	"workday-admin/internal/timeapi"
)

// ShowLogin renders the login form. An already authenticated browser is
// sent straight to the dashboard.
func (h *Handler) ShowLogin(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		if tok, ok := sess.Get(middleware.TokenKey).(string); ok && tok != "" {
			return c.Redirect("/")
		}
	}
	return c.Render("login", fiber.Map{
		"Title": "Admin Login",
		"Email": "",
	}, "layout")
}

// Login exchanges the submitted credentials for a token and stores it in
// the session. On failure the form is re-rendered with the upstream
// message and no token is ever stored.
func (h *Handler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Title": "Admin Login",
			"Error": "Email and password are required",
			"Email": email,
		}, "layout")
	}

	tok, err := h.api.Login(c.UserContext(), email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		h.log.Warn().Err(err).Str("email", email).Msg("login failed")
		msg := "Invalid credentials"
		var apiErr *timeapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Admin Login",
			"Error": msg,
			"Email": email,
		}, "layout")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session error")
	}
	sess.Set(middleware.TokenKey, tok)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session save error")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect("/")
}

// Logout clears the session.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/login")
}
