package handlers

import (
	"gamenight/internal/app"
	contactController "gamenight/internal/controllers/contacts"
	"gamenight/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ContactHandler struct {
	Handler
	auth              fiber.Handler
	contactController contactController.ContactControllerInterface
}

func NewContactHandler(app app.App, router fiber.Router, auth fiber.Handler) *ContactHandler {
	return &ContactHandler{
		contactController: app.Controllers.Contact,
		auth:              auth,
		Handler: Handler{
			log:        logger.New("handlers").File("contact_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ContactHandler) Register() {
	contacts := h.router.Group("/contacts")
	contacts.Get("", h.auth, h.list)
	contacts.Post("", h.auth, h.create)
	contacts.Put("/:id", h.auth, h.update)
	contacts.Delete("/:id", h.auth, h.delete)
}

func (h *ContactHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	contacts, err := h.contactController.List(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to list contacts")
	}

	return c.JSON(fiber.Map{"contacts": contacts})
}

func (h *ContactHandler) create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req contactController.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contact, err := h.contactController.Create(c.Context(), user, req)
	if err != nil {
		return respondError(c, err, "Failed to create contact")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"contact": contact})
}

func (h *ContactHandler) update(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid contact ID")
	}

	var req contactController.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contact, err := h.contactController.Update(c.Context(), user, contactID, req)
	if err != nil {
		return respondError(c, err, "Failed to update contact")
	}

	return c.JSON(fiber.Map{"contact": contact})
}

func (h *ContactHandler) delete(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid contact ID")
	}

	if err := h.contactController.Delete(c.Context(), user, contactID); err != nil {
		return respondError(c, err, "Failed to delete contact")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
