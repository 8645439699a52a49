package leaderboard

import (
	"gdps-backend/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the leaderboard read surface.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: service.logger}
}

// RegisterRoutes registers the leaderboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router, adminGuard fiber.Handler) {
	group := app.Group("/leaderboards")
	group.Get("/:board", h.HandleTop)
	group.Post("/:board/sync", adminGuard, h.HandleSync)
}

// HandleTop serves the top of a board.
func (h *Handler) HandleTop(c *fiber.Ctx) error {
	board := Board(c.Params("board"))
	if !board.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown board"})
	}

	l := logger.WithRayID(h.logger, c)
	entries, err := h.service.Top(c.Context(), board, c.QueryInt("limit", 100))
	if err != nil {
		l.Error("Leaderboard read failed", zap.String("board", string(board)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// HandleSync rebuilds a board in-process. Cluster-wide rebuilds go over the
// invalidation bus instead.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	board := Board(c.Params("board"))
	if !board.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown board"})
	}

	l := logger.WithRayID(h.logger, c)
	var err error
	switch board {
	case BoardStars:
		err = h.service.SyncStars(c.Context())
	case BoardCreators:
		err = h.service.SyncCreators(c.Context())
	}
	if err != nil {
		l.Error("Leaderboard rebuild failed", zap.String("board", string(board)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "rebuilt"})
}
