package models

import "testing"

func TestIsValidCampaignTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{CampaignStatusDraft, CampaignStatusLaunching, true},
		{CampaignStatusLaunching, CampaignStatusPaused, true},
		{CampaignStatusPaused, CampaignStatusActive, true},
		{CampaignStatusActive, CampaignStatusPaused, true},

		// Failure and retry
		{CampaignStatusLaunching, CampaignStatusFailed, true},
		{CampaignStatusFailed, CampaignStatusLaunching, true},

		// Archival
		{CampaignStatusDraft, CampaignStatusArchived, true},
		{CampaignStatusFailed, CampaignStatusArchived, true},
		{CampaignStatusPaused, CampaignStatusArchived, true},
		{CampaignStatusActive, CampaignStatusArchived, true},

		// Invalid transitions
		{CampaignStatusDraft, CampaignStatusActive, false},
		{CampaignStatusDraft, CampaignStatusPaused, false},
		{CampaignStatusLaunching, CampaignStatusDraft, false},
		{CampaignStatusLaunching, CampaignStatusArchived, false},
		{CampaignStatusPaused, CampaignStatusLaunching, false},
		{CampaignStatusArchived, CampaignStatusDraft, false},
		{CampaignStatusArchived, CampaignStatusLaunching, false},
		{"nonexistent", CampaignStatusLaunching, false},
		{CampaignStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidCampaignTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidCampaignTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		CampaignStatusDraft, CampaignStatusLaunching, CampaignStatusPaused,
		CampaignStatusActive, CampaignStatusFailed, CampaignStatusArchived,
	}

	for _, status := range allStatuses {
		if _, ok := ValidCampaignTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidCampaignTransitions map", status)
		}
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	if transitions := ValidCampaignTransitions[CampaignStatusArchived]; len(transitions) != 0 {
		t.Errorf("archived should have no transitions, got %v", transitions)
	}
}

func TestIsValidAssetType(t *testing.T) {
	if !IsValidAssetType(AssetTypeUpload) || !IsValidAssetType(AssetTypeCatalog) {
		t.Error("upload and catalog should be valid asset types")
	}
	if IsValidAssetType("video") || IsValidAssetType("") {
		t.Error("unknown asset types should be invalid")
	}
}

func TestBriefFields(t *testing.T) {
	var nilBrief *Brief
	if fields := nilBrief.Fields(); len(fields) != 0 {
		t.Errorf("nil brief should flatten to empty map, got %v", fields)
	}

	website := "https://shop.example.com"
	empty := ""
	b := &Brief{Website: &website, Gender: &empty}
	fields := b.Fields()
	if fields["website"] != website {
		t.Errorf("website = %q, want %q", fields["website"], website)
	}
	if _, ok := fields["gender"]; ok {
		t.Error("empty fields should be omitted")
	}
}

func TestAssetIsVideo(t *testing.T) {
	video := Asset{ContentType: "video/mp4"}
	image := Asset{ContentType: "image/png"}
	if !video.IsVideo() {
		t.Error("video/mp4 should be a video")
	}
	if image.IsVideo() {
		t.Error("image/png should not be a video")
	}
}

func TestAssetDisplayName(t *testing.T) {
	tests := []struct {
		fileName string
		expected string
	}{
		{"summer-sale.png", "summer-sale"},
		{"promo.final.jpg", "promo.final"},
		{"noextension", "noextension"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		a := Asset{FileName: tt.fileName}
		if got := a.DisplayName(); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.fileName, got, tt.expected)
		}
	}
}
