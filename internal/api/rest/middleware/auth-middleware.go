package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/starkteam/stark/internal/helper"
)

// RequireUser guards routes that need an authenticated session. It
// stashes the session email in locals for the handler.
func RequireUser(store *session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return ctx.Redirect("/login")
		}

		email, _ := sess.Get(helper.SessionUserEmail).(string)
		if email == "" {
			helper.AddFlash(sess, "warning", "Please log in to continue.")
			_ = sess.Save()
			return ctx.Redirect("/login")
		}

		ctx.Locals("userEmail", email)
		return ctx.Next()
	}
}
