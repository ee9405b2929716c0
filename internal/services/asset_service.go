package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/ad-agent/backend/internal/events"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type assetRows interface {
	Create(ctx context.Context, a *models.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssetService struct {
	assets    assetRows
	store     storage.ObjectStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewAssetService(assets assetRows, store storage.ObjectStore, publisher events.Publisher, log *zap.Logger) *AssetService {
	return &AssetService{assets: assets, store: store, publisher: publisher, log: log}
}

// Upload persists the binary to object storage first, then inserts the row.
// When the insert fails the stored object is deleted again so no orphaned
// binaries accumulate.
func (s *AssetService) Upload(ctx context.Context, userID uuid.UUID, campaignID *uuid.UUID, fileName, contentType string, size int64, r io.Reader) (*models.Asset, error) {
	key := fmt.Sprintf("%s/%s%s", userID, uuid.New(), path.Ext(fileName))

	if err := s.store.Put(ctx, key, contentType, size, r); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	asset := &models.Asset{
		UserID:      userID,
		CampaignID:  campaignID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		StorageKey:  key,
		PublicURL:   s.store.PublicURL(key),
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("failed to clean up stored object after insert failure",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type:   events.EventAssetUploaded,
		UserID: userID.String(),
		Payload: map[string]any{
			"asset_id":  asset.ID.String(),
			"file_name": asset.FileName,
		},
	})

	return asset, nil
}

func (s *AssetService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error) {
	return s.assets.ListByCampaign(ctx, campaignID)
}

func (s *AssetService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error) {
	return s.assets.ListByUser(ctx, userID)
}

// Delete removes the storage object and the row. A storage failure is
// logged but the row is deleted regardless.
func (s *AssetService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("asset not found")
	}
	if asset.UserID != userID {
		return fmt.Errorf("asset not found")
	}

	if err := s.store.Delete(ctx, asset.StorageKey); err != nil {
		s.log.Warn("failed to delete storage object",
			zap.String("key", asset.StorageKey), zap.Error(err))
	}

	return s.assets.Delete(ctx, id)
}
