package handlers

import (
	"carelog/internal/app"
	dayController "carelog/internal/controllers/day"
	"carelog/internal/handlers/middleware"
	"carelog/internal/logger"
	. "carelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DayHandler struct {
	Handler
	controller *dayController.DayController
}

func NewDayHandler(app app.App, router fiber.Router) *DayHandler {
	log := logger.New("handlers").File("day_handler")
	return &DayHandler{
		controller: app.DayController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *DayHandler) Register() {
	days := h.router.Group("/days", h.middleware.RequireUser)
	days.Get("/", h.listDays)
	days.Get("/:date", h.getDay)
	days.Patch("/:date", h.patchDay)
	days.Get("/:date/summary", h.getSummary)
	days.Post("/:date/events", h.addEvent)
	days.Post("/:date/questions", h.addQuestion)

	events := h.router.Group("/events", h.middleware.RequireUser)
	events.Delete("/:id", h.deleteEvent)

	questions := h.router.Group("/questions", h.middleware.RequireUser)
	questions.Patch("/:id", h.updateQuestion)
	questions.Delete("/:id", h.deleteQuestion)
}

func (h *DayHandler) listDays(c *fiber.Ctx) error {
	dates, err := h.controller.ListDaysWithData(c.Context(), middleware.UserID(c), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, "failed to list days", err)
	}

	return c.JSON(fiber.Map{"message": "success", "dates": dates})
}

func (h *DayHandler) getDay(c *fiber.Ctx) error {
	day, err := h.controller.GetDay(c.Context(), middleware.UserID(c), c.Params("date"))
	if err != nil {
		return h.fail(c, "failed to get day", err)
	}

	return c.JSON(fiber.Map{"message": "success", "day": day})
}

func (h *DayHandler) patchDay(c *fiber.Ctx) error {
	var patch DayPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.badBody(c, "failed to parse day patch", err)
	}

	day, err := h.controller.PatchDay(c.Context(), middleware.UserID(c), c.Params("date"), patch)
	if err != nil {
		return h.fail(c, "failed to update day", err)
	}

	return c.JSON(fiber.Map{"message": "success", "day": day})
}

func (h *DayHandler) getSummary(c *fiber.Ctx) error {
	summary, err := h.controller.GetSummary(c.Context(), middleware.UserID(c), c.Params("date"))
	if err != nil {
		return h.fail(c, "failed to render summary", err)
	}

	return c.JSON(fiber.Map{"message": "success", "summary": summary})
}

func (h *DayHandler) addEvent(c *fiber.Ctx) error {
	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse event", err)
	}

	day, err := h.controller.AddEvent(c.Context(), middleware.UserID(c), c.Params("date"), input)
	if err != nil {
		return h.fail(c, "failed to add event", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "day": day})
}

func (h *DayHandler) deleteEvent(c *fiber.Ctx) error {
	if err := h.controller.DeleteEvent(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete event", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *DayHandler) addQuestion(c *fiber.Ctx) error {
	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse question", err)
	}

	day, err := h.controller.AddQuestion(c.Context(), middleware.UserID(c), c.Params("date"), input)
	if err != nil {
		return h.fail(c, "failed to add question", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "day": day})
}

func (h *DayHandler) updateQuestion(c *fiber.Ctx) error {
	var input QuestionAnsweredInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, "failed to parse question", err)
	}

	if err := h.controller.UpdateQuestionAnswered(c.Context(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return h.fail(c, "failed to update question", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *DayHandler) deleteQuestion(c *fiber.Ctx) error {
	if err := h.controller.DeleteQuestion(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete question", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
