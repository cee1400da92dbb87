package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// TokenKey is the session key and Locals key carrying the API bearer
// token. Written only by login/logout, read everywhere else.
const TokenKey = "token"

// RequireSession redirects to /login unless the session holds a token.
// The token is stashed in Locals for the handler to pass to the API
// client.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}

		token, ok := sess.Get(TokenKey).(string)
		if !ok || token == "" {
			return c.Redirect("/login")
		}

		c.Locals(TokenKey, token)
		return c.Next()
	}
}
