package middleware

import (
	"strings"

	"carelog/config"
	"carelog/internal/logger"
	"carelog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	UserIDHeader = "X-User-ID"
	userIDLocal  = "userID"
)

type Middleware struct {
	Config config.Config
	log    logger.Logger
}

func New(config config.Config) Middleware {
	return Middleware{
		Config: config,
		log:    logger.New("middleware"),
	}
}

// RequireUser reads the caller id from the X-User-ID header. The id is
// opaque: it is only checked for shape, never authenticated.
func (m Middleware) RequireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserIDHeader))
	if err := utils.ValidateID("user id", userID); err != nil {
		m.log.Function("RequireUser").Debug("rejected request without valid user id", "path", c.Path())
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "missing or invalid " + UserIDHeader + " header", "error": err.Error()})
	}

	c.Locals(userIDLocal, userID)
	return c.Next()
}

// UserID returns the id stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDLocal).(string)
	return userID
}
