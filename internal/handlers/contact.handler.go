package handlers

import (
	"carelog/internal/app"
	contactController "carelog/internal/controllers/contact"
	"carelog/internal/handlers/middleware"
	"carelog/internal/logger"
	. "carelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Handler
	controller *contactController.ContactController
}

func NewContactHandler(app app.App, router fiber.Router) *ContactHandler {
	log := logger.New("handlers").File("contact_handler")
	return &ContactHandler{
		controller: app.ContactController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ContactHandler) Register() {
	contacts := h.router.Group("/contacts", h.middleware.RequireUser)
	contacts.Get("/", h.listContacts)
	contacts.Post("/", h.addContact)
	contacts.Put("/:id", h.updateContact)
	contacts.Delete("/:id", h.deleteContact)
}

func (h *ContactHandler) listContacts(c *fiber.Ctx) error {
	contacts, err := h.controller.ListContacts(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, "failed to list contacts", err)
	}

	return c.JSON(fiber.Map{"message": "success", "contacts": contacts})
}

func (h *ContactHandler) addContact(c *fiber.Ctx) error {
	var input ContactInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse contact", err)
	}

	contact, err := h.controller.AddContact(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return h.fail(c, "failed to add contact", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "contact": contact})
}

func (h *ContactHandler) updateContact(c *fiber.Ctx) error {
	var input ContactInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse contact", err)
	}

	if err := h.controller.UpdateContact(c.Context(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return h.fail(c, "failed to update contact", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *ContactHandler) deleteContact(c *fiber.Ctx) error {
	if err := h.controller.DeleteContact(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete contact", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
