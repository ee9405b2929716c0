package handlers

import (
	"github.com/ad-agent/backend/internal/http/dto"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BriefHandler struct {
	briefRepo *repositories.BriefRepo
	log       *zap.Logger
}

func NewBriefHandler(briefRepo *repositories.BriefRepo, log *zap.Logger) *BriefHandler {
	return &BriefHandler{briefRepo: briefRepo, log: log}
}

// Create inserts a new brief version; previous versions are never touched.
func (h *BriefHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBriefRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	brief := &models.Brief{
		UserID:          middleware.GetUserID(c),
		Website:         req.Website,
		TargetLocations: req.TargetLocations,
		AgeRange:        req.AgeRange,
		Gender:          req.Gender,
		Currency:        req.Currency,
		MonthlyBudget:   req.MonthlyBudget,
		Tone:            req.Tone,
		Restrictions:    req.Restrictions,
		ProductSummary:  req.ProductSummary,
	}

	if err := h.briefRepo.Create(c.Context(), brief); err != nil {
		h.log.Error("brief create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: brief})
}

func (h *BriefHandler) GetLatest(c *fiber.Ctx) error {
	brief, err := h.briefRepo.GetLatest(c.Context(), middleware.GetUserID(c))
	if err != nil {
		h.log.Error("brief lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if brief == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no brief submitted yet"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: brief})
}
