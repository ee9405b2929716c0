package handlers

import (
	"github.com/ad-agent/backend/internal/http/dto"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/ad-agent/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssetHandler struct {
	assetService *services.AssetService
	log          *zap.Logger
}

func NewAssetHandler(assetService *services.AssetService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{assetService: assetService, log: log}
}

// Upload accepts a multipart form with a "file" part and an optional
// campaign_id field linking the asset to a draft.
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "file is required"})
	}

	var campaignID *uuid.UUID
	if v := c.FormValue("campaign_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
		}
		campaignID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	asset, err := h.assetService.Upload(c.Context(), middleware.GetUserID(c), campaignID,
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		h.log.Error("asset upload failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *AssetHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if v := c.Query("campaign_id"); v != "" {
		campaignID, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
		}
		assets, err := h.assetService.ListByCampaign(c.Context(), campaignID)
		if err != nil {
			h.log.Error("asset list failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
		}
		return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
	}

	assets, err := h.assetService.ListByUser(c.Context(), userID)
	if err != nil {
		h.log.Error("asset list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid asset id"})
	}

	if err := h.assetService.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
