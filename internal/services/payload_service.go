package services

import (
	"context"
	"errors"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Precondition errors surfaced to the user before any remote call is made.
// Each one names the action that unblocks it.
var (
	ErrNotConnected  = errors.New("Meta account is not connected")
	ErrNoAdAccount   = errors.New("no ad account selected")
	ErrNoAccessToken = errors.New("access token missing, reconnect your Meta account")
)

type connectionStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Connection, error)
}

type briefStore interface {
	GetLatest(ctx context.Context, userID uuid.UUID) (*models.Brief, error)
}

type assetStore interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error)
}

// PayloadService assembles the immutable agent payload for one
// campaign-creation attempt.
type PayloadService struct {
	connections connectionStore
	briefs      briefStore
	assets      assetStore
	log         *zap.Logger
}

func NewPayloadService(connections connectionStore, briefs briefStore, assets assetStore, log *zap.Logger) *PayloadService {
	return &PayloadService{
		connections: connections,
		briefs:      briefs,
		assets:      assets,
		log:         log,
	}
}

// BuildAgentPayload resolves the connection, latest brief and creative assets
// for the draft and assembles one immutable payload.
//
// The connection preconditions are hard: without an ad account id and an
// access token no other store is consulted and no payload is returned. A
// missing brief degrades targeting to defaults rather than failing. Assets
// are only fetched when the draft advertises uploaded files.
func (s *PayloadService) BuildAgentPayload(ctx context.Context, userID uuid.UUID, draft *models.Campaign) (*models.AgentPayload, error) {
	conn, err := s.connections.GetByUserID(ctx, userID)
	if err != nil || conn == nil {
		return nil, ErrNotConnected
	}
	if conn.AdAccountID == nil || *conn.AdAccountID == "" {
		return nil, ErrNoAdAccount
	}
	if conn.AccessToken == nil || *conn.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	briefFields := map[string]string{}
	brief, err := s.briefs.GetLatest(ctx, userID)
	if err != nil {
		s.log.Warn("brief lookup failed, proceeding with empty brief",
			zap.String("user_id", userID.String()), zap.Error(err))
	} else {
		briefFields = brief.Fields()
	}

	var assets []models.Asset
	if draft.AssetType == models.AssetTypeUpload {
		assets, err = s.assets.ListByCampaign(ctx, draft.ID)
		if err != nil {
			return nil, err
		}
	}

	payload := &models.AgentPayload{
		Draft:       *draft,
		AdAccountID: *conn.AdAccountID,
		AccessToken: *conn.AccessToken,
		PixelID:     conn.PixelID,
		CatalogID:   pick(draft.CatalogID, conn.CatalogID),
		CatalogName: conn.CatalogName,
		PageID:      pick(draft.PageID, conn.PageID),
		PageName:    conn.PageName,
		Brief:       briefFields,
		Assets:      assets,
		Mode:        models.AgentModeTest,
	}
	return payload, nil
}

// pick prefers the value selected on the draft, falling back to the one
// stored on the connection.
func pick(draft, conn *string) *string {
	if draft != nil && *draft != "" {
		return draft
	}
	return conn
}
