package handlers

import (
	"gamenight/internal/app"
	gamenightController "gamenight/internal/controllers/gamenights"
	"gamenight/internal/handlers/middleware"
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GameNightHandler struct {
	Handler
	auth                fiber.Handler
	gamenightController gamenightController.GameNightControllerInterface
}

func NewGameNightHandler(app app.App, router fiber.Router, auth fiber.Handler) *GameNightHandler {
	return &GameNightHandler{
		gamenightController: app.Controllers.GameNight,
		auth:                auth,
		Handler: Handler{
			log:        logger.New("handlers").File("gamenight_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameNightHandler) Register() {
	gamenights := h.router.Group("/gamenights")
	gamenights.Get("", h.auth, h.list)
	gamenights.Post("", h.auth, h.create)
	gamenights.Get("/:rid", h.auth, h.get)
	gamenights.Patch("/:rid", h.auth, h.patch)
}

// PatchGameNightRequest carries the host's incremental edits: membership
// toggles, a status change, or schedule fields. Toggles apply before the
// status change so a finalize in the same request sees the final sets.
type PatchGameNightRequest struct {
	ToggleAttendee *uuid.UUID `json:"toggleAttendee,omitempty"`
	ToggleInvitee  *uuid.UUID `json:"toggleInvitee,omitempty"`
	ToggleOption   *uuid.UUID `json:"toggleOption,omitempty"`
	ToggleGame     *uuid.UUID `json:"toggleGame,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Date           *string    `json:"date,omitempty"`
	StartTime      *string    `json:"startTime,omitempty"`
	EndTime        *string    `json:"endTime,omitempty"`
	Location       *string    `json:"location,omitempty"`
}

func (r *PatchGameNightRequest) hasScheduleChange() bool {
	return r.Date != nil || r.StartTime != nil || r.EndTime != nil || r.Location != nil
}

func (h *GameNightHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	gamenights, err := h.gamenightController.ListByUser(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to list game nights")
	}

	return c.JSON(fiber.Map{"gamenights": gamenights})
}

func (h *GameNightHandler) create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req gamenightController.CreateGameNightRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	gamenight, err := h.gamenightController.Create(c.Context(), user, req)
	if err != nil {
		return respondError(c, err, "Failed to create game night")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"gamenight": gamenight})
}

func (h *GameNightHandler) get(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	gamenight, err := h.gamenightController.GetByRID(c.Context(), user, c.Params("rid"))
	if err != nil {
		return respondError(c, err, "Failed to get game night")
	}

	return c.JSON(fiber.Map{"gamenight": gamenight})
}

func (h *GameNightHandler) patch(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	rid := c.Params("rid")

	var req PatchGameNightRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var gamenight *GameNight
	var err error
	toggles := []struct {
		id     *uuid.UUID
		toggle func(*fiber.Ctx, *User, string, uuid.UUID) (*GameNight, error)
	}{
		{req.ToggleAttendee, h.toggleAttendee},
		{req.ToggleInvitee, h.toggleInvitee},
		{req.ToggleOption, h.toggleOption},
		{req.ToggleGame, h.toggleGame},
	}
	for _, t := range toggles {
		if t.id == nil {
			continue
		}
		gamenight, err = t.toggle(c, user, rid, *t.id)
		if err != nil {
			return respondError(c, err, "Failed to update game night")
		}
	}

	if req.Status != nil {
		gamenight, err = h.gamenightController.SetStatus(
			c.Context(), user, rid, GameNightStatus(*req.Status),
		)
		if err != nil {
			return respondError(c, err, "Failed to update status")
		}
	}

	if req.hasScheduleChange() {
		gamenight, err = h.gamenightController.UpdateSchedule(
			c.Context(), user, rid,
			gamenightController.UpdateScheduleRequest{
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Location:  req.Location,
			},
		)
		if err != nil {
			return respondError(c, err, "Failed to update schedule")
		}
	}

	if gamenight == nil {
		return badRequest(c, "No changes requested")
	}

	return c.JSON(fiber.Map{"gamenight": gamenight})
}

func (h *GameNightHandler) toggleAttendee(c *fiber.Ctx, user *User, rid string, id uuid.UUID) (*GameNight, error) {
	return h.gamenightController.ToggleAttendee(c.Context(), user, rid, id)
}

func (h *GameNightHandler) toggleInvitee(c *fiber.Ctx, user *User, rid string, id uuid.UUID) (*GameNight, error) {
	return h.gamenightController.ToggleInvitee(c.Context(), user, rid, id)
}

func (h *GameNightHandler) toggleOption(c *fiber.Ctx, user *User, rid string, id uuid.UUID) (*GameNight, error) {
	return h.gamenightController.ToggleOption(c.Context(), user, rid, id)
}

func (h *GameNightHandler) toggleGame(c *fiber.Ctx, user *User, rid string, id uuid.UUID) (*GameNight, error) {
	return h.gamenightController.ToggleGame(c.Context(), user, rid, id)
}
