package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrade/backend/internal/catalog"
	"github.com/gametrade/backend/internal/engine"
	"github.com/gametrade/backend/pkg/logger"
)

// Recommender is the engine surface the API depends on.
type Recommender interface {
	Recommend(ctx context.Context, title string) (*engine.AggregateResult, error)
}

type Handler struct {
	engine  Recommender
	catalog *catalog.Client
}

func NewHandler(eng Recommender, cat *catalog.Client) *Handler {
	return &Handler{engine: eng, catalog: cat}
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/api/recommend-price", h.handleRecommendPrice)
	app.Get("/api/autocomplete", h.handleAutocomplete)
	app.Get("/health", handleHealth)
}

func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) handleRecommendPrice(c *fiber.Ctx) error {
	log := logger.Log

	title := c.Query("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing title query parameter",
		})
	}

	log.Info().Str("title", title).Msg("recommend-price request received")

	start := time.Now()
	result, err := h.engine.Recommend(c.Context(), title)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, engine.ErrEmptyTitle) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Error().Err(err).Str("title", title).Msg("recommend-price failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Info().
		Str("title", title).
		Bool("recommended", result.RecommendedPrice != nil).
		Int64("time_ms", elapsed.Milliseconds()).
		Msg("recommend-price completed")

	return c.JSON(result)
}

func (h *Handler) handleAutocomplete(c *fiber.Ctx) error {
	query := c.Query("q")
	category := c.Query("category")

	if query == "" || category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing query or category",
		})
	}

	switch category {
	case "Game":
		results, err := h.catalog.SearchGames(c.Context(), query)
		if err != nil {
			logger.Log.Error().Err(err).Str("q", query).Msg("game autocomplete failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog lookup failed"})
		}
		return c.JSON(fiber.Map{"results": results})

	case "Accessory":
		suggestions, err := h.catalog.SuggestAccessories(c.Context(), query)
		if err != nil {
			logger.Log.Error().Err(err).Str("q", query).Msg("accessory autocomplete failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "suggest lookup failed"})
		}
		return c.JSON(fiber.Map{"suggestions": suggestions})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unhandled category"})
	}
}
