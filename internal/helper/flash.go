package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashKey = "flashes"

// FlashMessage is a one-shot notice with a severity tag
// (info/success/warning/danger) rendered on the next page view.
type FlashMessage struct {
	Level string
	Text  string
}

// AddFlash queues a message; the caller is responsible for saving the
// session. Messages are stored as "level|text" strings so any session
// storage can encode them.
func AddFlash(sess *session.Session, level, text string) {
	cur, _ := sess.Get(flashKey).([]string)
	sess.Set(flashKey, append(cur, level+"|"+text))
}

// TakeFlashes returns queued messages and clears them, so each is
// delivered exactly once.
func TakeFlashes(sess *session.Session) []FlashMessage {
	raw, _ := sess.Get(flashKey).([]string)
	if len(raw) == 0 {
		return nil
	}
	sess.Delete(flashKey)

	out := make([]FlashMessage, 0, len(raw))
	for _, s := range raw {
		level, text, found := strings.Cut(s, "|")
		if !found {
			level, text = "info", s
		}
		out = append(out, FlashMessage{Level: level, Text: text})
	}
	return out
}
