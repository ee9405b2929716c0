package services

import (
	"context"
	"fmt"

	"github.com/ad-agent/backend/internal/config"
	"github.com/ad-agent/backend/internal/events"
	"github.com/ad-agent/backend/internal/meta"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectionService orchestrates the Meta OAuth linking flow and the stored
// connection lifecycle.
type ConnectionService struct {
	connectionRepo *repositories.ConnectionRepo
	auditRepo      *repositories.AuditRepo
	graph          *meta.Client
	publisher      events.Publisher
	cfg            *config.Config
	log            *zap.Logger
}

func NewConnectionService(
	connectionRepo *repositories.ConnectionRepo,
	auditRepo *repositories.AuditRepo,
	graph *meta.Client,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *ConnectionService {
	return &ConnectionService{
		connectionRepo: connectionRepo,
		auditRepo:      auditRepo,
		graph:          graph,
		publisher:      publisher,
		cfg:            cfg,
		log:            log,
	}
}

// Connect exchanges the OAuth code for an access token and stores the link.
// Account and page selection happens afterwards via SelectAccount; a
// reconnect keeps whatever the user picked before.
func (s *ConnectionService) Connect(ctx context.Context, userID uuid.UUID, code string) (*models.Connection, error) {
	token, err := s.graph.ExchangeCode(ctx, s.cfg.MetaAppID, s.cfg.MetaAppSecret, s.cfg.MetaOAuthRedirect, code)
	if err != nil {
		return nil, fmt.Errorf("failed to link Meta account: %w", err)
	}

	conn, err := s.connectionRepo.GetByUserID(ctx, userID)
	if err != nil {
		conn = &models.Connection{UserID: userID}
	}
	conn.AccessToken = &token

	if err := s.connectionRepo.Upsert(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "meta_account_connected",
		EntityType:  "connection",
		EntityID:    &conn.ID,
	})
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type:    events.EventAccountConnected,
		UserID:  userID.String(),
		Payload: map[string]any{"connection_id": conn.ID.String()},
	})

	s.log.Info("meta account connected", zap.String("user_id", userID.String()))
	return conn, nil
}

type AccountSelection struct {
	AdAccountID *string `json:"ad_account_id,omitempty"`
	PixelID     *string `json:"pixel_id,omitempty"`
	CatalogID   *string `json:"catalog_id,omitempty"`
	CatalogName *string `json:"catalog_name,omitempty"`
	PageID      *string `json:"page_id,omitempty"`
	PageName    *string `json:"page_name,omitempty"`
}

// SelectAccount records which ad account, pixel, catalog and page campaigns
// should be created under.
func (s *ConnectionService) SelectAccount(ctx context.Context, userID uuid.UUID, sel AccountSelection) (*models.Connection, error) {
	conn, err := s.connectionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Meta account is not connected")
	}

	if sel.AdAccountID != nil {
		conn.AdAccountID = sel.AdAccountID
	}
	if sel.PixelID != nil {
		conn.PixelID = sel.PixelID
	}
	if sel.CatalogID != nil {
		conn.CatalogID = sel.CatalogID
	}
	if sel.CatalogName != nil {
		conn.CatalogName = sel.CatalogName
	}
	if sel.PageID != nil {
		conn.PageID = sel.PageID
	}
	if sel.PageName != nil {
		conn.PageName = sel.PageName
	}

	if err := s.connectionRepo.UpdateSelection(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// ListAdAccounts returns the ad accounts the linked token can manage,
// for the account picker.
func (s *ConnectionService) ListAdAccounts(ctx context.Context, userID uuid.UUID) ([]meta.AdAccount, error) {
	conn, err := s.connectionRepo.GetByUserID(ctx, userID)
	if err != nil || conn.AccessToken == nil || *conn.AccessToken == "" {
		return nil, fmt.Errorf("Meta account is not connected")
	}
	return s.graph.GetAdAccounts(ctx, *conn.AccessToken)
}

func (s *ConnectionService) ListPages(ctx context.Context, userID uuid.UUID) ([]meta.Page, error) {
	conn, err := s.connectionRepo.GetByUserID(ctx, userID)
	if err != nil || conn.AccessToken == nil || *conn.AccessToken == "" {
		return nil, fmt.Errorf("Meta account is not connected")
	}
	return s.graph.GetPages(ctx, *conn.AccessToken)
}

func (s *ConnectionService) ListCatalogs(ctx context.Context, userID uuid.UUID) ([]meta.ProductCatalog, error) {
	conn, err := s.connectionRepo.GetByUserID(ctx, userID)
	if err != nil || conn.AccessToken == nil || *conn.AccessToken == "" {
		return nil, fmt.Errorf("Meta account is not connected")
	}
	return s.graph.GetProductCatalogs(ctx, *conn.AccessToken)
}

func (s *ConnectionService) Get(ctx context.Context, userID uuid.UUID) (*models.Connection, error) {
	return s.connectionRepo.GetByUserID(ctx, userID)
}

// Disconnect clears the access token. The row and previous selections are
// kept so a later reconnect restores them.
func (s *ConnectionService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	if err := s.connectionRepo.ClearAccessToken(ctx, userID); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "meta_account_disconnected",
		EntityType:  "user",
		EntityID:    &userID,
	})
	return nil
}
