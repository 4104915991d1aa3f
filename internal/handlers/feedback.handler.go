package handlers

import (
	"gamenight/internal/app"
	feedbackController "gamenight/internal/controllers/feedback"
	"gamenight/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler serves the rid-capability surface: invitees submit votes,
// RSVPs and feedback through the shared link without an account, so these
// POST routes skip authentication. The RSVP listing is host-facing and
// authenticated.
type FeedbackHandler struct {
	Handler
	auth               fiber.Handler
	feedbackController feedbackController.FeedbackControllerInterface
}

func NewFeedbackHandler(app app.App, router fiber.Router, auth fiber.Handler) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackController: app.Controllers.Feedback,
		auth:               auth,
		Handler: Handler{
			log:        logger.New("handlers").File("feedback_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FeedbackHandler) Register() {
	gamenights := h.router.Group("/gamenights")
	gamenights.Post("/:rid/votes", h.votes)
	gamenights.Post("/:rid/feedback", h.generalFeedback)
	gamenights.Post("/:rid/gamefeedback", h.gameFeedback)
	gamenights.Post("/:rid/rsvp", h.rsvp)
	gamenights.Get("/:rid/rsvp", h.auth, h.listRSVPs)
}

func (h *FeedbackHandler) votes(c *fiber.Ctx) error {
	var req feedbackController.VoteBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.feedbackController.RecordVotes(c.Context(), c.Params("rid"), req)
	if err != nil {
		return respondError(c, err, "Failed to record votes")
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *FeedbackHandler) generalFeedback(c *fiber.Ctx) error {
	var req feedbackController.GeneralFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	feedback, err := h.feedbackController.RecordGeneralFeedback(c.Context(), c.Params("rid"), req)
	if err != nil {
		return respondError(c, err, "Failed to record feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"feedback": feedback})
}

func (h *FeedbackHandler) gameFeedback(c *fiber.Ctx) error {
	var req feedbackController.GameFeedbackBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.feedbackController.RecordGameFeedback(c.Context(), c.Params("rid"), req)
	if err != nil {
		return respondError(c, err, "Failed to record game feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *FeedbackHandler) rsvp(c *fiber.Ctx) error {
	var req feedbackController.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rsvp, err := h.feedbackController.RecordRSVP(c.Context(), c.Params("rid"), req)
	if err != nil {
		return respondError(c, err, "Failed to record RSVP")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rsvp": rsvp})
}

func (h *FeedbackHandler) listRSVPs(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	rsvps, err := h.feedbackController.ListRSVPs(c.Context(), user, c.Params("rid"))
	if err != nil {
		return respondError(c, err, "Failed to list RSVPs")
	}

	return c.JSON(fiber.Map{"rsvps": rsvps})
}
