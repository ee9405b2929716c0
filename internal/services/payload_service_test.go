package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeConnections struct {
	conn *models.Connection
	err  error
}

func (f *fakeConnections) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Connection, error) {
	return f.conn, f.err
}

type fakeBriefs struct {
	brief  *models.Brief
	err    error
	called bool
}

func (f *fakeBriefs) GetLatest(ctx context.Context, userID uuid.UUID) (*models.Brief, error) {
	f.called = true
	return f.brief, f.err
}

type fakeAssets struct {
	assets []models.Asset
	err    error
	called bool
}

func (f *fakeAssets) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error) {
	f.called = true
	return f.assets, f.err
}

func connectedConn() *models.Connection {
	return &models.Connection{
		AdAccountID: strp("act_123"),
		AccessToken: strp("tok"),
		PageID:      strp("conn-page"),
		CatalogID:   strp("conn-catalog"),
	}
}

func uploadDraft() *models.Campaign {
	return &models.Campaign{
		ID:        uuid.New(),
		Name:      "Summer Sale",
		AssetType: models.AssetTypeUpload,
	}
}

func TestBuildAgentPayloadPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		conn    *models.Connection
		connErr error
		wantErr error
	}{
		{"no connection row", nil, nil, ErrNotConnected},
		{"connection lookup failed", nil, errors.New("db down"), ErrNotConnected},
		{"no ad account selected", &models.Connection{AccessToken: strp("tok")}, nil, ErrNoAdAccount},
		{"empty ad account", &models.Connection{AdAccountID: strp(""), AccessToken: strp("tok")}, nil, ErrNoAdAccount},
		{"no access token", &models.Connection{AdAccountID: strp("act_123")}, nil, ErrNoAccessToken},
		{"empty access token", &models.Connection{AdAccountID: strp("act_123"), AccessToken: strp("")}, nil, ErrNoAccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			briefs := &fakeBriefs{}
			assets := &fakeAssets{}
			svc := NewPayloadService(&fakeConnections{conn: tt.conn, err: tt.connErr}, briefs, assets, zap.NewNop())

			payload, err := svc.BuildAgentPayload(context.Background(), uuid.New(), uploadDraft())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if payload != nil {
				t.Error("no payload expected when a precondition fails")
			}
			// Failed preconditions stop assembly before any other lookup.
			if briefs.called || assets.called {
				t.Error("brief and asset stores must not be consulted after a failed precondition")
			}
		})
	}
}

func TestBuildAgentPayloadBriefDegradesToEmpty(t *testing.T) {
	t.Run("lookup error", func(t *testing.T) {
		svc := NewPayloadService(&fakeConnections{conn: connectedConn()},
			&fakeBriefs{err: errors.New("db down")}, &fakeAssets{assets: []models.Asset{{}}}, zap.NewNop())

		payload, err := svc.BuildAgentPayload(context.Background(), uuid.New(), uploadDraft())
		if err != nil {
			t.Fatalf("brief failure must not block assembly: %v", err)
		}
		if len(payload.Brief) != 0 {
			t.Errorf("brief = %v, want empty map", payload.Brief)
		}
	})

	t.Run("no brief submitted", func(t *testing.T) {
		svc := NewPayloadService(&fakeConnections{conn: connectedConn()},
			&fakeBriefs{}, &fakeAssets{assets: []models.Asset{{}}}, zap.NewNop())

		payload, err := svc.BuildAgentPayload(context.Background(), uuid.New(), uploadDraft())
		if err != nil {
			t.Fatalf("missing brief must not block assembly: %v", err)
		}
		if len(payload.Brief) != 0 {
			t.Errorf("brief = %v, want empty map", payload.Brief)
		}
	})
}

func TestBuildAgentPayloadAssets(t *testing.T) {
	t.Run("fetched for upload drafts", func(t *testing.T) {
		assets := &fakeAssets{assets: []models.Asset{{FileName: "hero.png"}}}
		svc := NewPayloadService(&fakeConnections{conn: connectedConn()}, &fakeBriefs{}, assets, zap.NewNop())

		payload, err := svc.BuildAgentPayload(context.Background(), uuid.New(), uploadDraft())
		if err != nil {
			t.Fatal(err)
		}
		if !assets.called || len(payload.Assets) != 1 {
			t.Errorf("assets = %v, called = %v", payload.Assets, assets.called)
		}
	})

	t.Run("skipped for catalog drafts", func(t *testing.T) {
		assets := &fakeAssets{}
		svc := NewPayloadService(&fakeConnections{conn: connectedConn()}, &fakeBriefs{}, assets, zap.NewNop())

		draft := uploadDraft()
		draft.AssetType = models.AssetTypeCatalog
		if _, err := svc.BuildAgentPayload(context.Background(), uuid.New(), draft); err != nil {
			t.Fatal(err)
		}
		if assets.called {
			t.Error("asset store must not be consulted for catalog drafts")
		}
	})

	t.Run("asset lookup failure is fatal", func(t *testing.T) {
		assets := &fakeAssets{err: errors.New("db down")}
		svc := NewPayloadService(&fakeConnections{conn: connectedConn()}, &fakeBriefs{}, assets, zap.NewNop())

		if _, err := svc.BuildAgentPayload(context.Background(), uuid.New(), uploadDraft()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestBuildAgentPayloadSelection(t *testing.T) {
	website := "https://shop.example.com"
	brief := &models.Brief{Website: &website}
	svc := NewPayloadService(&fakeConnections{conn: connectedConn()},
		&fakeBriefs{brief: brief}, &fakeAssets{assets: []models.Asset{{}}}, zap.NewNop())

	draft := uploadDraft()
	draft.PageID = strp("draft-page")

	payload, err := svc.BuildAgentPayload(context.Background(), uuid.New(), draft)
	if err != nil {
		t.Fatal(err)
	}

	if payload.AdAccountID != "act_123" || payload.AccessToken != "tok" {
		t.Errorf("connection fields = %q / %q", payload.AdAccountID, payload.AccessToken)
	}
	// The draft's explicit page selection wins over the connection's.
	if payload.PageID == nil || *payload.PageID != "draft-page" {
		t.Errorf("page id = %v, want draft-page", payload.PageID)
	}
	// The connection's catalog is used when the draft picks none.
	if payload.CatalogID == nil || *payload.CatalogID != "conn-catalog" {
		t.Errorf("catalog id = %v, want conn-catalog", payload.CatalogID)
	}
	if payload.Brief["website"] != website {
		t.Errorf("brief = %v", payload.Brief)
	}
	if payload.Mode != models.AgentModeTest {
		t.Errorf("mode = %q, want test", payload.Mode)
	}
}
