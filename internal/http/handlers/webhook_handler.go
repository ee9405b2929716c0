package handlers

import (
	"strings"

	"github.com/ad-agent/backend/internal/http/dto"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	webhookRepo *repositories.WebhookRepo
	log         *zap.Logger
}

func NewWebhookHandler(webhookRepo *repositories.WebhookRepo, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{webhookRepo: webhookRepo, log: log}
}

func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url must be http(s)"})
	}

	endpoint := &models.WebhookEndpoint{
		UserID:   middleware.GetUserID(c),
		URL:      req.URL,
		Secret:   req.Secret,
		IsActive: true,
	}
	if err := h.webhookRepo.CreateEndpoint(c.Context(), endpoint); err != nil {
		h.log.Error("webhook create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: endpoint})
}

func (h *WebhookHandler) List(c *fiber.Ctx) error {
	endpoints, err := h.webhookRepo.ListActiveEndpoints(c.Context(), middleware.GetUserID(c))
	if err != nil {
		h.log.Error("webhook list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: endpoints})
}

func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid webhook id"})
	}

	if err := h.webhookRepo.DeleteEndpoint(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
