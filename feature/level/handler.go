package level

import (
	"strconv"

	"gdps-backend/core/logger"
	"gdps-backend/feature/level/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the thin HTTP surface for levels. The game-protocol
// frontend is a separate service; these endpoints exist for tooling and
// administration.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: service.logger}
}

// RegisterRoutes registers the level routes. adminGuard protects the
// endpoints that mutate cluster state.
func (h *Handler) RegisterRoutes(app fiber.Router, adminGuard fiber.Handler) {
	group := app.Group("/levels")
	group.Get("/search", h.HandleSearch)
	group.Get("/:id", h.HandleGetLevel)
	group.Post("/sync", adminGuard, h.HandleSync)
}

// HandleGetLevel serves a single level through the cache-backed lookup path.
func (h *Handler) HandleGetLevel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid level id"})
	}

	l := logger.WithRayID(h.logger, c)
	level, err := h.service.FromID(c.Context(), id)
	if err != nil {
		l.Error("Level lookup failed", zap.Int("level_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if level == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "level not found"})
	}
	return c.JSON(level)
}

// HandleSearch runs an index-backed level search.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	params := SearchParams{
		Query:    c.Query("query"),
		Page:     c.QueryInt("page", 0),
		PageSize: c.QueryInt("page_size", 10),
		OrderBy:  OrderBy(c.Query("order_by", string(OrderByDownloads))),
	}
	if lengths := c.Query("lengths"); lengths != "" {
		var list models.IntList
		if err := list.Scan(lengths); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid lengths"})
		}
		for _, v := range list {
			params.RequiredLengths = append(params.RequiredLengths, models.Length(v))
		}
	}

	l := logger.WithRayID(h.logger, c)
	results, err := h.service.Search(c.Context(), params)
	if err != nil {
		l.Error("Level search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// HandleSync publishes the cluster-wide resync trigger for the levels index.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	if err := h.service.RequestResync(c.Context()); err != nil {
		l.Error("Failed to request level resync", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "resync requested"})
}
