package services

import (
	"context"
	"fmt"

	"github.com/ad-agent/backend/internal/events"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type launchGuard interface {
	Acquire(ctx context.Context, campaignID uuid.UUID) (bool, error)
	Release(ctx context.Context, campaignID uuid.UUID)
}

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	auditRepo    *repositories.AuditRepo
	payloads     *PayloadService
	launcher     *LaunchService
	guard        launchGuard
	publisher    events.Publisher
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	auditRepo *repositories.AuditRepo,
	payloads *PayloadService,
	launcher *LaunchService,
	guard launchGuard,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		auditRepo:    auditRepo,
		payloads:     payloads,
		launcher:     launcher,
		guard:        guard,
		publisher:    publisher,
		log:          log,
	}
}

func (s *CampaignService) Create(ctx context.Context, userID uuid.UUID, c *models.Campaign) error {
	c.UserID = userID
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	if !models.IsValidAssetType(c.AssetType) {
		return fmt.Errorf("invalid asset type %q, must be %q or %q", c.AssetType, models.AssetTypeUpload, models.AssetTypeCatalog)
	}

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})

	return nil
}

func (s *CampaignService) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("campaign not found")
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, f repositories.CampaignFilter) ([]models.Campaign, error) {
	f.UserID = &userID
	return s.campaignRepo.List(ctx, f)
}

func (s *CampaignService) Update(ctx context.Context, id, userID uuid.UUID, c *models.Campaign) error {
	existing, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if existing.Status != models.CampaignStatusDraft && existing.Status != models.CampaignStatusFailed {
		return fmt.Errorf("only draft campaigns can be edited")
	}

	c.ID = id
	c.UserID = existing.UserID
	c.Status = existing.Status
	return s.campaignRepo.Update(ctx, c)
}

func (s *CampaignService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.campaignRepo.Delete(ctx, id)
}

// SetStatus flips the local status only. Remote activation is an explicit,
// separate concern and is never triggered from here.
func (s *CampaignService) SetStatus(ctx context.Context, id, userID uuid.UUID, status string) error {
	existing, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !models.IsValidCampaignTransition(existing.Status, status) {
		return fmt.Errorf("invalid transition from %s to %s", existing.Status, status)
	}
	return s.campaignRepo.UpdateStatus(ctx, id, status)
}

// Launch assembles the agent payload for the draft and runs the remote
// creation sequence. An in-flight guard rejects a second launch of the same
// campaign while one is running.
func (s *CampaignService) Launch(ctx context.Context, id, userID uuid.UUID) *LaunchResult {
	draft, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return &LaunchResult{Message: err.Error(), Err: err}
	}
	if draft.Status != models.CampaignStatusDraft && draft.Status != models.CampaignStatusFailed {
		err := fmt.Errorf("campaign is %s, only drafts can be launched", draft.Status)
		return &LaunchResult{Message: err.Error(), Err: err}
	}

	ok, err := s.guard.Acquire(ctx, id)
	if err != nil {
		s.log.Warn("launch guard unavailable, proceeding without it", zap.Error(err))
	} else if !ok {
		err := fmt.Errorf("a launch for this campaign is already in progress")
		return &LaunchResult{Message: err.Error(), Err: err}
	} else {
		defer s.guard.Release(ctx, id)
	}

	payload, err := s.payloads.BuildAgentPayload(ctx, userID, draft)
	if err != nil {
		return &LaunchResult{Message: err.Error(), Err: err}
	}

	_ = s.campaignRepo.UpdateStatus(ctx, id, models.CampaignStatusLaunching)

	result := s.launcher.CreateRemoteCampaign(ctx, payload)

	if result.Success {
		_ = s.auditRepo.Log(ctx, models.AuditLog{
			ActorUserID: &userID,
			ActorType:   "user",
			Action:      "campaign_launched",
			EntityType:  "campaign",
			EntityID:    &id,
			Meta:        map[string]any{"meta_campaign_id": result.Data.CampaignID},
		})
		_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
			Type:   events.EventCampaignLaunched,
			UserID: userID.String(),
			Payload: map[string]any{
				"campaign_id":      id.String(),
				"meta_campaign_id": result.Data.CampaignID,
			},
		})
		return result
	}

	_ = s.campaignRepo.UpdateStatus(ctx, id, models.CampaignStatusFailed)
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "system",
		Action:      "campaign_launch_failed",
		EntityType:  "campaign",
		EntityID:    &id,
		Meta:        map[string]any{"step": result.Step, "error": result.Message},
	})
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type:   events.EventLaunchFailed,
		UserID: userID.String(),
		Payload: map[string]any{
			"campaign_id": id.String(),
			"step":        result.Step,
			"error":       result.Message,
		},
	})
	return result
}
