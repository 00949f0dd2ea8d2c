package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"crosspost/internal/queue"
)

type QueueHandler struct {
	inspector *asynq.Inspector
}

func NewQueueHandler(inspector *asynq.Inspector) *QueueHandler {
	return &QueueHandler{inspector: inspector}
}

// GetStats reports waiting/active/completed/failed job counts for
// operational dashboards.
func (h *QueueHandler) GetStats(c *fiber.Ctx) error {
	stats, err := queue.GetStats(h.inspector)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to read queue stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
