package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeGraph records every call and can be told to fail a single step.
type fakeGraph struct {
	calls   []string
	deleted []string
	failOn  string
}

func (f *fakeGraph) create(step, id string) (string, error) {
	f.calls = append(f.calls, step)
	if f.failOn == step {
		return "", errors.New(step + " rejected by remote")
	}
	return id, nil
}

func (f *fakeGraph) CreateCampaign(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return f.create("campaign", "rc-1")
}

func (f *fakeGraph) CreateAdSet(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return f.create("adset", "ras-1")
}

func (f *fakeGraph) CreateAdCreative(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return f.create("creative", "rcr-1")
}

func (f *fakeGraph) CreateAd(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return f.create("ad", "ra-1")
}

func (f *fakeGraph) DeleteResource(ctx context.Context, token, resourceID string) error {
	f.deleted = append(f.deleted, resourceID)
	return nil
}

type fakeMirror struct {
	called bool
	ids    []string
	err    error
}

func (f *fakeMirror) SetRemoteIDs(ctx context.Context, id uuid.UUID, campaignID, adSetID, creativeID, adID string) error {
	f.called = true
	f.ids = []string{campaignID, adSetID, creativeID, adID}
	return f.err
}

func strp(s string) *string { return &s }

func uploadPayload() *models.AgentPayload {
	return &models.AgentPayload{
		Draft: models.Campaign{
			ID:          uuid.New(),
			Name:        "Summer Sale",
			Objective:   "sales",
			Goal:        "increase sales",
			DailyBudget: "19.99",
			AssetType:   models.AssetTypeUpload,
		},
		AdAccountID: "act_123",
		AccessToken: "tok",
		PageID:      strp("page-1"),
		Brief:       map[string]string{"website": "https://shop.example.com"},
		Assets: []models.Asset{
			{FileName: "hero.png", ContentType: "image/png", PublicURL: "https://cdn/hero.png"},
		},
		Mode: models.AgentModeTest,
	}
}

func newTestLaunchService(graph *fakeGraph, mirror *fakeMirror) *LaunchService {
	return NewLaunchService(graph, mirror, "US", time.Second, zap.NewNop())
}

func TestCreateRemoteCampaignSuccess(t *testing.T) {
	graph := &fakeGraph{}
	mirror := &fakeMirror{}
	svc := newTestLaunchService(graph, mirror)

	result := svc.CreateRemoteCampaign(context.Background(), uploadPayload())
	if !result.Success {
		t.Fatalf("expected success, got %q (step %q)", result.Message, result.Step)
	}

	wantCalls := []string{"campaign", "adset", "creative", "ad"}
	if !reflect.DeepEqual(graph.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", graph.calls, wantCalls)
	}
	if len(graph.deleted) != 0 {
		t.Errorf("no rollback expected on success, deleted %v", graph.deleted)
	}

	want := &RemoteIDs{CampaignID: "rc-1", AdSetID: "ras-1", CreativeID: "rcr-1", AdID: "ra-1"}
	if !reflect.DeepEqual(result.Data, want) {
		t.Errorf("ids = %+v, want %+v", result.Data, want)
	}

	if !mirror.called {
		t.Fatal("remote ids were not mirrored locally")
	}
	if !reflect.DeepEqual(mirror.ids, []string{"rc-1", "ras-1", "rcr-1", "ra-1"}) {
		t.Errorf("mirrored ids = %v", mirror.ids)
	}
}

func TestCreateRemoteCampaignRollback(t *testing.T) {
	tests := []struct {
		failOn      string
		wantStep    string
		wantCalls   []string
		wantDeleted []string
	}{
		{
			failOn:      "campaign",
			wantStep:    StepCampaign,
			wantCalls:   []string{"campaign"},
			wantDeleted: nil,
		},
		{
			failOn:      "adset",
			wantStep:    StepAdSet,
			wantCalls:   []string{"campaign", "adset"},
			wantDeleted: []string{"rc-1"},
		},
		{
			failOn:      "creative",
			wantStep:    StepCreative,
			wantCalls:   []string{"campaign", "adset", "creative"},
			wantDeleted: []string{"ras-1", "rc-1"},
		},
		{
			failOn:      "ad",
			wantStep:    StepAd,
			wantCalls:   []string{"campaign", "adset", "creative", "ad"},
			wantDeleted: []string{"rcr-1", "ras-1", "rc-1"},
		},
	}

	for _, tt := range tests {
		t.Run("fail at "+tt.failOn, func(t *testing.T) {
			graph := &fakeGraph{failOn: tt.failOn}
			mirror := &fakeMirror{}
			svc := newTestLaunchService(graph, mirror)

			result := svc.CreateRemoteCampaign(context.Background(), uploadPayload())
			if result.Success {
				t.Fatal("expected failure")
			}
			if result.Step != tt.wantStep {
				t.Errorf("step = %q, want %q", result.Step, tt.wantStep)
			}
			if !reflect.DeepEqual(graph.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", graph.calls, tt.wantCalls)
			}
			// Rollback runs in reverse-creation order.
			if !reflect.DeepEqual(graph.deleted, tt.wantDeleted) {
				t.Errorf("deleted = %v, want %v", graph.deleted, tt.wantDeleted)
			}
			if mirror.called {
				t.Error("mirror must not be written on failure")
			}
		})
	}
}

func TestCreateRemoteCampaignInvalidBudget(t *testing.T) {
	graph := &fakeGraph{}
	svc := newTestLaunchService(graph, &fakeMirror{})

	payload := uploadPayload()
	payload.Draft.DailyBudget = "twenty"

	result := svc.CreateRemoteCampaign(context.Background(), payload)
	if result.Success {
		t.Fatal("expected validation failure")
	}
	if result.Step != "" {
		t.Errorf("validation failures carry no step tag, got %q", result.Step)
	}
	if len(graph.calls) != 0 {
		t.Errorf("no remote calls expected, got %v", graph.calls)
	}
}

func TestCreateRemoteCampaignNoAssets(t *testing.T) {
	graph := &fakeGraph{}
	svc := newTestLaunchService(graph, &fakeMirror{})

	payload := uploadPayload()
	payload.Assets = nil

	result := svc.CreateRemoteCampaign(context.Background(), payload)
	if result.Success {
		t.Fatal("expected validation failure")
	}
	if len(graph.calls) != 0 {
		t.Errorf("no remote calls expected, got %v", graph.calls)
	}
}

func TestCreateRemoteCampaignMirrorFailureStillSucceeds(t *testing.T) {
	graph := &fakeGraph{}
	mirror := &fakeMirror{err: errors.New("db unavailable")}
	svc := newTestLaunchService(graph, mirror)

	result := svc.CreateRemoteCampaign(context.Background(), uploadPayload())
	if !result.Success {
		t.Fatalf("launch must succeed despite mirror failure, got %q", result.Message)
	}
	if len(graph.deleted) != 0 {
		t.Errorf("no rollback expected, deleted %v", graph.deleted)
	}
	if result.Data == nil || result.Data.AdID != "ra-1" {
		t.Errorf("ids = %+v", result.Data)
	}
}

func TestAdSetFieldsPromotedObject(t *testing.T) {
	svc := newTestLaunchService(&fakeGraph{}, &fakeMirror{})

	payload := uploadPayload()
	payload.PixelID = strp("px-1")
	fields := svc.adSetFields(payload, "rc-1", 1999)

	if fields["daily_budget"] != "1999" {
		t.Errorf("daily_budget = %q, want 1999", fields["daily_budget"])
	}
	if fields["promoted_object"] == "" {
		t.Error("promoted_object missing with a pixel selected")
	}
	if fields["campaign_id"] != "rc-1" {
		t.Errorf("campaign_id = %q", fields["campaign_id"])
	}

	payload.PixelID = nil
	fields = svc.adSetFields(payload, "rc-1", 1999)
	if _, ok := fields["promoted_object"]; ok {
		t.Error("promoted_object must be omitted without pixel or catalog")
	}
}
