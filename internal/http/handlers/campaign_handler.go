package handlers

import (
	"strconv"

	"github.com/ad-agent/backend/internal/http/dto"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/ad-agent/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func campaignFromRequest(req *dto.CreateCampaignRequest) *models.Campaign {
	return &models.Campaign{
		Name:        req.Name,
		Objective:   req.Objective,
		Goal:        req.Goal,
		DailyBudget: req.DailyBudget,
		Currency:    req.Currency,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		OfferText:   req.OfferText,
		AssetType:   req.AssetType,
		PageID:      req.PageID,
		CatalogID:   req.CatalogID,
	}
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	if req.Name == "" || req.DailyBudget == "" || req.AssetType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name, daily_budget, and asset_type are required"})
	}

	campaign := campaignFromRequest(&req)
	if err := h.campaignService.Create(c.Context(), middleware.GetUserID(c), campaign); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.GetByID(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Limit: 20}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	campaigns, err := h.campaignService.List(c.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	userID := middleware.GetUserID(c)
	if err := h.campaignService.Update(c.Context(), id, userID, campaignFromRequest(&req)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	updated, _ := h.campaignService.GetByID(c.Context(), id, userID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	if err := h.campaignService.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *CampaignHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.SetCampaignStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status is required"})
	}

	if err := h.campaignService.SetStatus(c.Context(), id, middleware.GetUserID(c), req.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// launchFailureStatus distinguishes upstream Graph API failures from bad
// requests. A step tag means a remote call was made and rejected, so the
// caller's own request was well-formed.
func launchFailureStatus(result *services.LaunchResult) int {
	if result.Step != "" {
		return fiber.StatusBadGateway
	}
	return fiber.StatusBadRequest
}

// Launch runs the full remote creation sequence for a draft. Failures carry
// the tag of the creation step that failed, empty for precondition and
// validation errors.
func (h *CampaignHandler) Launch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	result := h.campaignService.Launch(c.Context(), id, middleware.GetUserID(c))
	if result.Success {
		return c.JSON(dto.LaunchResponse{Success: true, Message: result.Message, Data: result.Data})
	}

	h.log.Warn("campaign launch failed",
		zap.String("campaign_id", id.String()),
		zap.String("step", result.Step),
		zap.String("error", result.Message))
	return c.Status(launchFailureStatus(result)).JSON(dto.ErrorResponse{Error: result.Message, Step: result.Step})
}
