// Package handlers renders the console pages. Every handler follows the
// same loop: call the time-tracking API, build view data, render a
// template. An upstream 401 always ends the session and sends the
// browser back to /login.
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"workday-admin/internal/middleware"
	"workday-admin/internal/timeapi"
)

type Handler struct {
	api      *timeapi.Client
	store    *session.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func New(api *timeapi.Client, store *session.Store, log zerolog.Logger) *Handler {
	return &Handler{
		api:      api,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// token returns the bearer token stashed by the auth middleware.
func token(c *fiber.Ctx) string {
	tok, _ := c.Locals(middleware.TokenKey).(string)
	return tok
}

// expireSession destroys the session and redirects to /login. Used when
// the API reports the token is no longer valid.
func (h *Handler) expireSession(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/login")
}

// errorMessage maps a client error to the inline message shown on the
// page. API-reported messages pass through verbatim; anything else
// (network, decode) gets a generic line.
func errorMessage(err error) string {
	var apiErr *timeapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Request failed, please try again"
}
