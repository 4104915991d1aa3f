package handlers

import (
	"gamenight/internal/app"
	tagController "gamenight/internal/controllers/tags"
	"gamenight/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	Handler
	auth          fiber.Handler
	tagController tagController.TagControllerInterface
}

func NewTagHandler(app app.App, router fiber.Router, auth fiber.Handler) *TagHandler {
	return &TagHandler{
		tagController: app.Controllers.Tag,
		auth:          auth,
		Handler: Handler{
			log:        logger.New("handlers").File("tag_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TagHandler) Register() {
	tags := h.router.Group("/tags")
	tags.Get("", h.auth, h.list)
	tags.Post("", h.auth, h.create)

	h.router.Get("/categories", h.auth, h.listCategories)
}

type createTagRequest struct {
	Name string `json:"name"`
}

func (h *TagHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	tags, err := h.tagController.List(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to list tags")
	}

	return c.JSON(fiber.Map{"tags": tags})
}

func (h *TagHandler) create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req createTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tag, err := h.tagController.Create(c.Context(), user, req.Name)
	if err != nil {
		return respondError(c, err, "Failed to create tag")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tag": tag})
}

func (h *TagHandler) listCategories(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	categories, err := h.tagController.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to list categories")
	}

	return c.JSON(fiber.Map{"categories": categories})
}
