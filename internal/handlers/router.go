package handlers

import (
	"strings"

	"carelog/internal/app"
	"carelog/internal/handlers/middleware"
	"carelog/internal/logger"
	"carelog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

// NewServer builds the fiber app with the API mounted under /api.
func NewServer(app *app.App) (*fiber.App, error) {
	server := fiber.New(fiber.Config{
		AppName:               "carelog " + app.Config.GeneralVersion,
		DisableStartupMessage: !app.Config.IsDev(),
	})

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: app.Config.CorsAllowOrigins,
		AllowHeaders: strings.Join([]string{"Origin", "Content-Type", "Accept", middleware.UserIDHeader}, ", "),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	if err := Router(server, app); err != nil {
		return nil, err
	}
	return server, nil
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewSettingsHandler(*app, api).Register()
	NewDayHandler(*app, api).Register()
	NewContactHandler(*app, api).Register()

	return nil
}

// fail maps invalid arguments to 400 and everything else to 500.
func (h Handler) fail(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	if utils.IsInvalidArgument(err) {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"message": message, "error": err.Error()})
}

func (h Handler) badBody(c *fiber.Ctx, message string, err error) error {
	h.log.Function("badBody").Er(message, err, "path", c.Path())
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message, "error": err.Error()})
}
