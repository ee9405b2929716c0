package handlers

import (
	"github.com/ad-agent/backend/internal/http/dto"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/ad-agent/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
	log               *zap.Logger
}

func NewConnectionHandler(connectionService *services.ConnectionService, log *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService, log: log}
}

func (h *ConnectionHandler) Connect(c *fiber.Ctx) error {
	var req dto.ConnectMetaRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "authorization code is required"})
	}

	userID := middleware.GetUserID(c)
	conn, err := h.connectionService.Connect(c.Context(), userID, req.Code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: conn})
}

func (h *ConnectionHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	conn, err := h.connectionService.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no Meta connection"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: conn})
}

func (h *ConnectionHandler) SelectAccount(c *fiber.Ctx) error {
	var req dto.SelectAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	userID := middleware.GetUserID(c)
	conn, err := h.connectionService.SelectAccount(c.Context(), userID, services.AccountSelection{
		AdAccountID: req.AdAccountID,
		PixelID:     req.PixelID,
		CatalogID:   req.CatalogID,
		CatalogName: req.CatalogName,
		PageID:      req.PageID,
		PageName:    req.PageName,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: conn})
}

func (h *ConnectionHandler) ListAdAccounts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	accounts, err := h.connectionService.ListAdAccounts(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: accounts})
}

func (h *ConnectionHandler) ListPages(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	pages, err := h.connectionService.ListPages(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: pages})
}

func (h *ConnectionHandler) ListCatalogs(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	catalogs, err := h.connectionService.ListCatalogs(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: catalogs})
}

func (h *ConnectionHandler) Disconnect(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if err := h.connectionService.Disconnect(c.Context(), userID); err != nil {
		h.log.Error("disconnect failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
