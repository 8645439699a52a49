package user

import (
	"strconv"

	"gdps-backend/core/logger"
	"gdps-backend/feature/relationship"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the thin HTTP surface for users and their profile data.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: service.logger}
}

// RegisterRoutes registers the user routes. adminGuard protects the
// endpoints that mutate cluster state.
func (h *Handler) RegisterRoutes(app fiber.Router, adminGuard fiber.Handler) {
	group := app.Group("/users")
	group.Get("/search", h.HandleSearch)
	group.Get("/:id", h.HandleGetUser)
	group.Get("/:id/comments", h.HandleGetComments)
	group.Get("/:id/friends", h.HandleGetFriends)
	group.Post("/sync", adminGuard, h.HandleSync)
}

// HandleGetUser serves a single user through the cache-backed lookup path.
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	l := logger.WithRayID(h.logger, c)
	user, err := h.service.FromID(c.Context(), id)
	if err != nil {
		l.Error("User lookup failed", zap.Int("user_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(user)
}

// HandleSearch runs an index-backed user search.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	results, err := h.service.Search(c.Context(),
		c.Query("query"), c.QueryInt("page", 0), c.QueryInt("page_size", 10))
	if err != nil {
		l.Error("User search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// HandleGetComments lists a page of a user's profile comments.
func (h *Handler) HandleGetComments(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	l := logger.WithRayID(h.logger, c)
	comments, total, err := h.service.Comments(c.Context(), id,
		c.QueryInt("page", 0), c.QueryInt("page_size", 10))
	if err != nil {
		l.Error("Comment listing failed", zap.Int("user_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"results": comments, "total": total})
}

// HandleGetFriends lists a user's friend edges.
func (h *Handler) HandleGetFriends(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	l := logger.WithRayID(h.logger, c)
	friends, err := h.service.Relationships(c.Context(), relationship.TypeFriend, id)
	if err != nil {
		l.Error("Friend listing failed", zap.Int("user_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(friends)
}

// HandleSync publishes the cluster-wide resync trigger for the users index.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	if err := h.service.RequestResync(c.Context()); err != nil {
		l.Error("Failed to request user resync", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "resync requested"})
}
