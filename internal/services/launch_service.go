package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ad-agent/backend/internal/meta"
	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Launch step tags returned with a failure so the caller knows how far the
// remote sequence got.
const (
	StepCampaign = "campaign"
	StepAdSet    = "adset"
	StepCreative = "creative"
	StepAd       = "ad"
)

// GraphAPI is the slice of the Meta client the orchestrator drives.
type GraphAPI interface {
	CreateCampaign(ctx context.Context, token, accountID string, fields map[string]string) (string, error)
	CreateAdSet(ctx context.Context, token, accountID string, fields map[string]string) (string, error)
	CreateAdCreative(ctx context.Context, token, accountID string, fields map[string]string) (string, error)
	CreateAd(ctx context.Context, token, accountID string, fields map[string]string) (string, error)
	DeleteResource(ctx context.Context, token, resourceID string) error
}

type remoteMirrorStore interface {
	SetRemoteIDs(ctx context.Context, id uuid.UUID, campaignID, adSetID, creativeID, adID string) error
}

// RemoteIDs are the four Graph resource identifiers of one launched campaign.
type RemoteIDs struct {
	CampaignID string `json:"campaign_id"`
	AdSetID    string `json:"adset_id"`
	CreativeID string `json:"creative_id"`
	AdID       string `json:"ad_id"`
}

// LaunchResult reports the outcome of one creation attempt. On failure Step
// names the creation call that failed; everything created before it has been
// rolled back best-effort.
type LaunchResult struct {
	Success bool
	Message string
	Data    *RemoteIDs
	Step    string
	Err     error
}

// LaunchService drives the ordered four-resource creation sequence against
// the Graph API and compensates on partial failure.
type LaunchService struct {
	graph          GraphAPI
	campaigns      remoteMirrorStore
	defaultCountry string
	stepTimeout    time.Duration
	log            *zap.Logger
}

func NewLaunchService(graph GraphAPI, campaigns remoteMirrorStore, defaultCountry string, stepTimeout time.Duration, log *zap.Logger) *LaunchService {
	if defaultCountry == "" {
		defaultCountry = "US"
	}
	if stepTimeout <= 0 {
		stepTimeout = 30 * time.Second
	}
	return &LaunchService{
		graph:          graph,
		campaigns:      campaigns,
		defaultCountry: defaultCountry,
		stepTimeout:    stepTimeout,
		log:            log,
	}
}

func failure(step string, err error) *LaunchResult {
	return &LaunchResult{Message: err.Error(), Step: step, Err: err}
}

// CreateRemoteCampaign executes campaign -> ad set -> creative -> ad against
// the Graph API, then mirrors the four ids onto the local campaign row.
//
// Each step blocks on the previous step's returned id. A step failure rolls
// back everything created so far in reverse-creation order; rollback is
// best-effort and never alters the returned error. A failure writing the
// local mirror after all four resources exist is logged but still reported
// as success: the remote campaign is real and billable, only the mirror is
// stale.
func (s *LaunchService) CreateRemoteCampaign(ctx context.Context, payload *models.AgentPayload) *LaunchResult {
	draft := &payload.Draft

	budgetCents, err := meta.ToMinorUnits(draft.DailyBudget)
	if err != nil {
		return failure("", fmt.Errorf("invalid daily budget %q: %w", draft.DailyBudget, err))
	}

	kind, err := classifyCreative(payload)
	if err != nil {
		return failure("", err)
	}

	// Step 1: campaign
	campaignID, err := s.step(ctx, func(ctx context.Context) (string, error) {
		return s.graph.CreateCampaign(ctx, payload.AccessToken, payload.AdAccountID, s.campaignFields(draft))
	})
	if err != nil {
		return failure(StepCampaign, err)
	}

	// Step 2: ad set
	adSetID, err := s.step(ctx, func(ctx context.Context) (string, error) {
		return s.graph.CreateAdSet(ctx, payload.AccessToken, payload.AdAccountID, s.adSetFields(payload, campaignID, budgetCents))
	})
	if err != nil {
		s.rollback(ctx, payload.AccessToken, campaignID)
		return failure(StepAdSet, err)
	}

	// Step 3: creative
	creativeID, err := s.step(ctx, func(ctx context.Context) (string, error) {
		return s.graph.CreateAdCreative(ctx, payload.AccessToken, payload.AdAccountID, s.creativeFields(payload, kind))
	})
	if err != nil {
		s.rollback(ctx, payload.AccessToken, adSetID, campaignID)
		return failure(StepCreative, err)
	}

	// Step 4: ad
	adID, err := s.step(ctx, func(ctx context.Context) (string, error) {
		return s.graph.CreateAd(ctx, payload.AccessToken, payload.AdAccountID, map[string]string{
			"name":     draft.Name,
			"adset_id": adSetID,
			"creative": jsonField(map[string]any{"creative_id": creativeID}),
			"status":   meta.StatusPaused,
		})
	})
	if err != nil {
		s.rollback(ctx, payload.AccessToken, creativeID, adSetID, campaignID)
		return failure(StepAd, err)
	}

	ids := &RemoteIDs{CampaignID: campaignID, AdSetID: adSetID, CreativeID: creativeID, AdID: adID}

	// Step 5: local mirror. All four resources exist and are paused; a write
	// failure here leaves the mirror stale but the launch succeeded.
	if err := s.campaigns.SetRemoteIDs(ctx, draft.ID, campaignID, adSetID, creativeID, adID); err != nil {
		s.log.Warn("remote campaign created but local mirror update failed",
			zap.String("campaign_id", draft.ID.String()),
			zap.String("meta_campaign_id", campaignID),
			zap.Error(err))
	}

	return &LaunchResult{
		Success: true,
		Message: "campaign created in paused state",
		Data:    ids,
	}
}

// step runs one remote call under the per-step timeout. A timeout is treated
// exactly like a remote failure of that step.
func (s *LaunchService) step(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()
	return fn(stepCtx)
}

// rollback marks the given resources deleted, in the order given (callers
// pass reverse-creation order). Cleanup failures are logged and swallowed:
// the Graph API has no multi-resource transaction, so compensation stays
// best-effort and never cascades into the caller's error.
func (s *LaunchService) rollback(ctx context.Context, token string, resourceIDs ...string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.stepTimeout)
	defer cancel()

	for _, id := range resourceIDs {
		if id == "" {
			continue
		}
		if err := s.graph.DeleteResource(cleanupCtx, token, id); err != nil {
			s.log.Error("rollback delete failed", zap.String("resource_id", id), zap.Error(err))
		}
	}
}

func (s *LaunchService) campaignFields(draft *models.Campaign) map[string]string {
	return map[string]string{
		"name":                  draft.Name,
		"objective":             meta.MapObjective(draft.Objective),
		"status":                meta.StatusPaused,
		"special_ad_categories": "[]",
	}
}

func (s *LaunchService) adSetFields(payload *models.AgentPayload, campaignID string, budgetCents int64) map[string]string {
	draft := &payload.Draft
	fields := map[string]string{
		"name":              draft.Name + " - Ad Set",
		"campaign_id":       campaignID,
		"billing_event":     meta.BillingEventImpressions,
		"optimization_goal": meta.MapOptimizationGoal(draft.Goal),
		"daily_budget":      strconv.FormatInt(budgetCents, 10),
		"targeting":         jsonField(meta.BuildTargeting(payload.Brief, s.defaultCountry)),
		"status":            meta.StatusPaused,
	}

	if draft.StartTime != nil && *draft.StartTime != "" {
		fields["start_time"] = meta.FormatTimestamp(*draft.StartTime)
	}
	if draft.EndTime != nil && *draft.EndTime != "" {
		fields["end_time"] = meta.FormatTimestamp(*draft.EndTime)
	}

	promoted := map[string]any{}
	if payload.PixelID != nil && *payload.PixelID != "" {
		promoted["pixel_id"] = *payload.PixelID
		promoted["custom_event_type"] = "PURCHASE"
	}
	if draft.AssetType == models.AssetTypeCatalog && payload.CatalogID != nil && *payload.CatalogID != "" {
		promoted["product_set_id"] = *payload.CatalogID
	}
	if len(promoted) > 0 {
		fields["promoted_object"] = jsonField(promoted)
	}

	return fields
}

func jsonField(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
