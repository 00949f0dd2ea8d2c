package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"

	config "crosspost/configs"
	"crosspost/pkg/utils"
)

const sessionDuration = 7 * 24 * time.Hour

// AuthHandler issues session cookies. Identity itself lives upstream; the
// gateway in front of this service authenticates the user and exchanges its
// shared secret for a session here.
type AuthHandler struct {
	cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
		Secret string `json:"secret"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if subtle.ConstantTimeCompare([]byte(body.Secret), []byte(h.cfg.SecretKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid secret",
		})
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, body.UserID, sessionDuration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(sessionDuration),
	})

	return c.SendStatus(fiber.StatusOK)
}
