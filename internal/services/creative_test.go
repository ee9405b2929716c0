package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ad-agent/backend/internal/models"
)

func imageAsset(n int) models.Asset {
	return models.Asset{
		FileName:    fmt.Sprintf("image-%d.png", n),
		ContentType: "image/png",
		PublicURL:   fmt.Sprintf("https://cdn/image-%d.png", n),
	}
}

func TestClassifyCreative(t *testing.T) {
	videoAsset := models.Asset{FileName: "promo.mp4", ContentType: "video/mp4"}

	tests := []struct {
		name     string
		payload  *models.AgentPayload
		expected creativeKind
		wantErr  bool
	}{
		{
			name: "video when first asset is a video",
			payload: &models.AgentPayload{
				Draft:  models.Campaign{AssetType: models.AssetTypeUpload},
				Assets: []models.Asset{videoAsset, imageAsset(1)},
			},
			expected: creativeVideo,
		},
		{
			name: "single image",
			payload: &models.AgentPayload{
				Draft:  models.Campaign{AssetType: models.AssetTypeUpload},
				Assets: []models.Asset{imageAsset(1)},
			},
			expected: creativeSingleImage,
		},
		{
			name: "carousel for multiple images",
			payload: &models.AgentPayload{
				Draft:  models.Campaign{AssetType: models.AssetTypeUpload},
				Assets: []models.Asset{imageAsset(1), imageAsset(2), imageAsset(3)},
			},
			expected: creativeCarousel,
		},
		{
			name: "catalog",
			payload: &models.AgentPayload{
				Draft:     models.Campaign{AssetType: models.AssetTypeCatalog},
				CatalogID: strp("cat-1"),
			},
			expected: creativeCatalog,
		},
		{
			name: "catalog without selected catalog",
			payload: &models.AgentPayload{
				Draft: models.Campaign{AssetType: models.AssetTypeCatalog},
			},
			wantErr: true,
		},
		{
			name: "upload without assets",
			payload: &models.AgentPayload{
				Draft: models.Campaign{AssetType: models.AssetTypeUpload},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := classifyCreative(tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if kind != tt.expected {
				t.Errorf("kind = %d, want %d", kind, tt.expected)
			}
		})
	}
}

func TestCreativeFieldsCarouselCap(t *testing.T) {
	svc := newTestLaunchService(&fakeGraph{}, &fakeMirror{})

	payload := &models.AgentPayload{
		Draft:  models.Campaign{Name: "Summer Sale", AssetType: models.AssetTypeUpload},
		PageID: strp("page-1"),
		Brief:  map[string]string{"website": "https://shop.example.com"},
	}
	for i := 0; i < 14; i++ {
		payload.Assets = append(payload.Assets, imageAsset(i))
	}

	fields := svc.creativeFields(payload, creativeCarousel)

	var story struct {
		LinkData struct {
			ChildAttachments []map[string]any `json:"child_attachments"`
		} `json:"link_data"`
	}
	if err := json.Unmarshal([]byte(fields["object_story_spec"]), &story); err != nil {
		t.Fatalf("object_story_spec is not valid JSON: %v", err)
	}
	if len(story.LinkData.ChildAttachments) != carouselMaxChildren {
		t.Errorf("children = %d, want %d", len(story.LinkData.ChildAttachments), carouselMaxChildren)
	}
}

func TestCreativeFieldsLinkFallback(t *testing.T) {
	svc := newTestLaunchService(&fakeGraph{}, &fakeMirror{})

	payload := &models.AgentPayload{
		Draft:  models.Campaign{Name: "Summer Sale", AssetType: models.AssetTypeUpload},
		Brief:  map[string]string{},
		Assets: []models.Asset{imageAsset(1)},
	}

	fields := svc.creativeFields(payload, creativeSingleImage)

	var story struct {
		LinkData struct {
			Link string `json:"link"`
		} `json:"link_data"`
	}
	if err := json.Unmarshal([]byte(fields["object_story_spec"]), &story); err != nil {
		t.Fatal(err)
	}
	if story.LinkData.Link != placeholderLink {
		t.Errorf("link = %q, want placeholder without a brief website", story.LinkData.Link)
	}
}
