package handlers

import (
	"carelog/internal/app"
	settingsController "carelog/internal/controllers/settings"
	"carelog/internal/handlers/middleware"
	"carelog/internal/logger"
	. "carelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	Handler
	controller *settingsController.SettingsController
}

func NewSettingsHandler(app app.App, router fiber.Router) *SettingsHandler {
	log := logger.New("handlers").File("settings_handler")
	return &SettingsHandler{
		controller: app.SettingsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SettingsHandler) Register() {
	settings := h.router.Group("/settings", h.middleware.RequireUser)
	settings.Get("/", h.getSettings)

	settings.Post("/metrics", h.addMetric)
	settings.Put("/metrics/:id", h.updateMetric)
	settings.Delete("/metrics/:id", h.deleteMetric)

	settings.Post("/event-types", h.addEventType)
	settings.Put("/event-types/:id", h.updateEventType)
	settings.Delete("/event-types/:id", h.deleteEventType)
}

func (h *SettingsHandler) getSettings(c *fiber.Ctx) error {
	settings, err := h.controller.GetSettings(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, "failed to get settings", err)
	}

	return c.JSON(fiber.Map{"message": "success", "settings": settings})
}

func (h *SettingsHandler) addMetric(c *fiber.Ctx) error {
	var input MetricInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse metric", err)
	}

	metric, err := h.controller.AddMetric(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return h.fail(c, "failed to add metric", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "metric": metric})
}

func (h *SettingsHandler) updateMetric(c *fiber.Ctx) error {
	var input MetricInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse metric", err)
	}

	if err := h.controller.UpdateMetric(c.Context(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return h.fail(c, "failed to update metric", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *SettingsHandler) deleteMetric(c *fiber.Ctx) error {
	if err := h.controller.DeleteMetric(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete metric", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *SettingsHandler) addEventType(c *fiber.Ctx) error {
	var input EventTypeInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse event type", err)
	}

	eventType, err := h.controller.AddEventType(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return h.fail(c, "failed to add event type", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "eventType": eventType})
}

func (h *SettingsHandler) updateEventType(c *fiber.Ctx) error {
	var input EventTypeInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse event type", err)
	}

	if err := h.controller.UpdateEventType(c.Context(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return h.fail(c, "failed to update event type", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *SettingsHandler) deleteEventType(c *fiber.Ctx) error {
	if err := h.controller.DeleteEventType(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete event type", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
