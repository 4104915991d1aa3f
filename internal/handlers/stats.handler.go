package handlers

import (
	"gamenight/internal/app"
	statsController "gamenight/internal/controllers/stats"
	"gamenight/internal/handlers/middleware"
	"gamenight/internal/metrics"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Handler
	auth            fiber.Handler
	statsController statsController.StatsControllerInterface
}

func NewStatsHandler(app app.App, router fiber.Router, auth fiber.Handler) *StatsHandler {
	return &StatsHandler{
		statsController: app.Controllers.Stats,
		auth:            auth,
		Handler: Handler{
			log:        logger.New("handlers").File("stats_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StatsHandler) Register() {
	stats := h.router.Group("/stats")
	stats.Get("/weekdays", h.auth, h.weekdays)
	stats.Get("/most-played", h.auth, h.mostPlayed)
	stats.Get("/least-played", h.auth, h.leastPlayed)
	stats.Get("/highest-rated", h.auth, h.highestRated)
	stats.Get("/categories", h.auth, h.categories)
	stats.Get("/common-players", h.auth, h.commonPlayers)
}

func (h *StatsHandler) weekdays(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("weekdays").Inc()

	buckets, err := h.statsController.GetWeekdayStats(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute weekday stats")
	}

	return c.JSON(fiber.Map{"weekdays": buckets})
}

func (h *StatsHandler) mostPlayed(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("most-played").Inc()

	shares, err := h.statsController.GetMostPlayed(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute most played games")
	}

	return c.JSON(fiber.Map{"mostPlayed": shares})
}

func (h *StatsHandler) leastPlayed(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("least-played").Inc()

	report, err := h.statsController.GetLeastPlayed(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute least played games")
	}

	return c.JSON(report)
}

func (h *StatsHandler) highestRated(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("highest-rated").Inc()

	rated, err := h.statsController.GetHighestRated(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute highest rated games")
	}

	return c.JSON(fiber.Map{"highestRated": rated})
}

func (h *StatsHandler) categories(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("categories").Inc()

	shares, err := h.statsController.GetCategoryBreakdown(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute category breakdown")
	}

	return c.JSON(fiber.Map{"categories": shares})
}

func (h *StatsHandler) commonPlayers(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	metrics.ReportRequests.WithLabelValues("common-players").Inc()

	players, err := h.statsController.GetCommonPlayers(c.Context(), user)
	if err != nil {
		return respondError(c, err, "Failed to compute common players")
	}

	return c.JSON(fiber.Map{"commonPlayers": players})
}
