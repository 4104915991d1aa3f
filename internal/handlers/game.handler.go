package handlers

import (
	"strconv"

	"gamenight/internal/app"
	gameController "gamenight/internal/controllers/games"
	"gamenight/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	Handler
	auth           fiber.Handler
	gameController gameController.GameControllerInterface
}

func NewGameHandler(app app.App, router fiber.Router, auth fiber.Handler) *GameHandler {
	return &GameHandler{
		gameController: app.Controllers.Game,
		auth:           auth,
		Handler: Handler{
			log:        logger.New("handlers").File("game_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games")
	games.Get("/library", h.auth, h.library)
	games.Get("/wishlist", h.auth, h.wishlist)
	games.Get("/:bggId", h.auth, h.get)
	games.Post("/:bggId/owned", h.auth, h.toggleOwned)
	games.Post("/:bggId/wishlisted", h.auth, h.toggleWishlisted)
}

func (h *GameHandler) library(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	games, err := h.gameController.Library(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to load library")
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GameHandler) wishlist(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	games, err := h.gameController.Wishlist(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to load wishlist")
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GameHandler) get(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	bggID, err := strconv.ParseInt(c.Params("bggId"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid catalog id")
	}

	game, err := h.gameController.GetByBGGID(c.Context(), user, bggID)
	if err != nil {
		return respondError(c, err, "Failed to load game")
	}

	return c.JSON(fiber.Map{"game": game})
}

func (h *GameHandler) toggleOwned(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	bggID, err := strconv.ParseInt(c.Params("bggId"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid catalog id")
	}

	game, owned, err := h.gameController.ToggleOwned(c.Context(), user, bggID)
	if err != nil {
		return respondError(c, err, "Failed to toggle library")
	}

	return c.JSON(fiber.Map{"game": game, "owned": owned})
}

func (h *GameHandler) toggleWishlisted(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	bggID, err := strconv.ParseInt(c.Params("bggId"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid catalog id")
	}

	game, wishlisted, err := h.gameController.ToggleWishlisted(c.Context(), user, bggID)
	if err != nil {
		return respondError(c, err, "Failed to toggle wishlist")
	}

	return c.JSON(fiber.Map{"game": game, "wishlisted": wishlisted})
}
